package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/archiva-cli/pkg/archiva"
	archerr "github.com/matzehuels/archiva-cli/pkg/errors"
)

// dispatch runs in on sess and writes the result to w as one line of
// compact JSON.
func dispatch(ctx context.Context, sess *archiva.Session, in Instruction, w io.Writer) error {
	result, err := execute(ctx, sess, in)
	if err != nil {
		return err
	}
	return printResult(w, result)
}

func execute(ctx context.Context, sess *archiva.Session, in Instruction) (any, error) {
	switch in.Kind {
	case KindVersionsList:
		return sess.VersionsList(ctx, in.Group, in.Name)
	case KindDownloadInfos:
		return sess.DownloadInfos(ctx, in.Group, in.Name, in.Version)
	default:
		return nil, archerr.New(archerr.ErrCodeInvalidInstruction, "unknown command %q", in.Kind)
	}
}

func printResult(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}
