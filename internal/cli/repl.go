package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/matzehuels/archiva-cli/pkg/archiva"
)

const (
	cmdQuit = "q"
	cmdHelp = "help"
)

// interactive reads instructions from in, one per line, and executes each on
// sess until "q" or end of input. Failed instructions are logged and the
// loop continues. The prompt is only shown when in is a terminal.
func (c *CLI) interactive(ctx context.Context, sess *archiva.Session, in io.Reader, out, errOut io.Writer) error {
	prompt := isTerminal(in)

	readCtx, stop := context.WithCancel(ctx)
	defer stop()
	lines, errc := readLines(readCtx, in)

	for {
		if prompt {
			printPrompt(errOut)
		}

		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				return <-errc
			}
			line = strings.TrimSpace(l)
		}

		switch line {
		case "":
			continue
		case cmdQuit:
			return nil
		case cmdHelp:
			printHelp(errOut)
			continue
		}

		instr, err := ParseInstruction(line)
		if err == nil {
			err = dispatch(ctx, sess, instr, out)
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logError(c.Logger, err)
		}
	}
}

// readLines scans in on a separate goroutine so that the loop can observe
// cancellation while waiting for input. errc receives exactly one value
// before lines is closed.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
		errc <- scanner.Err()
	}()
	return lines, errc
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func printPrompt(w io.Writer) {
	fmt.Fprint(w, stylePrompt.Render(appName+">")+" ")
}
