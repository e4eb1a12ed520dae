// Package cli implements the archiva-cli command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/archiva-cli/internal/config"
	"github.com/matzehuels/archiva-cli/pkg/archiva"
	"github.com/matzehuels/archiva-cli/pkg/buildinfo"
	archerr "github.com/matzehuels/archiva-cli/pkg/errors"
	"github.com/matzehuels/archiva-cli/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "archiva-cli"

	// Environment variables consulted when -u/-p are not given.
	envUser     = "ARCHIVA_USR"
	envPassword = "ARCHIVA_PWD"
)

// LogInfo is the initial log level, exported for use in main.go.
const LogInfo = log.InfoLevel

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for the root command.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// options holds the raw flag values of the root command.
type options struct {
	host       string
	user       string
	password   string
	setReferer bool
	execute    string
	verbosity  string
	timeout    time.Duration
	configPath string
}

// RootCommand creates the root cobra command.
func (c *CLI) RootCommand() *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:   appName + " -H HOST [-x INSTRUCTION]",
		Short: "Query an Apache Archiva repository manager",
		Long: `archiva-cli logs in to an Archiva server, runs one or more queries and logs out.

With -x the single instruction is executed. Without it, instructions are read
from stdin one per line until "q" or end of input.

Instructions:
  versionsList:{group}.{name}
  downloadInfos:{group}.{name}:{version}`,
		Example: `  archiva-cli -H https://archiva.example.com -x versionsList:com.example.lib
  echo downloadInfos:com.example.lib:1.0.0 | archiva-cli -H https://archiva.example.com -V s`,
		Version:       buildinfo.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.report(c.runRoot(cmd, &opts))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	f := root.Flags()
	f.StringVarP(&opts.host, "host", "H", "", "archiva base URL, e.g. https://archiva.example.com (required)")
	f.BoolVarP(&opts.setReferer, "set-referer", "R", false, "send the host as Referer header")
	f.StringVarP(&opts.user, "user", "u", "", "archiva user (default guest), also taken from $"+envUser)
	f.StringVarP(&opts.password, "password", "p", "", "archiva password (default empty), also taken from $"+envPassword)
	f.StringVarP(&opts.execute, "execute", "x", "", "execute a single instruction and exit")
	f.StringVarP(&opts.verbosity, "verbose-level", "V", verbosityInfo, "diagnostics: e(rror), w(arning), i(nfo), s(uppress)")
	f.DurationVar(&opts.timeout, "timeout", archiva.DefaultTimeout, "per-request timeout")
	f.StringVar(&opts.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/archiva-cli/config.toml)")

	return root
}

// =============================================================================
// Root Command
// =============================================================================

func (c *CLI) runRoot(cmd *cobra.Command, opts *options) error {
	// Honor -V for errors raised before layering completes.
	if level, err := parseVerbosity(opts.verbosity); err == nil {
		c.SetLogLevel(level)
	}

	s, err := resolve(cmd, opts)
	if err != nil {
		return err
	}

	level, err := parseVerbosity(s.verbosity)
	if err != nil {
		return err
	}
	c.SetLogLevel(level)

	// A malformed instruction must fail before any network I/O.
	var single *Instruction
	if s.execute != "" {
		in, err := ParseInstruction(s.execute)
		if err != nil {
			return err
		}
		single = &in
	}

	sess, err := archiva.New(archiva.Config{
		Host:       s.host,
		User:       s.user,
		Password:   s.password,
		SetReferer: s.setReferer,
		Timeout:    s.timeout,
		Logger:     c.Logger,
	})
	if err != nil {
		return err
	}

	observability.SetHTTPHooks(logHooks{fallback: c.Logger})
	ctx := withLogger(cmd.Context(), c.Logger)

	return sess.Run(ctx, func(sess *archiva.Session) error {
		if single != nil {
			return dispatch(ctx, sess, *single, cmd.OutOrStdout())
		}
		return c.interactive(ctx, sess, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	})
}

// =============================================================================
// Settings Layering
// =============================================================================

// settings are the effective values after flag > env > config > default
// layering.
type settings struct {
	host       string
	user       string
	password   string
	setReferer bool
	execute    string
	verbosity  string
	timeout    time.Duration
}

func resolve(cmd *cobra.Command, opts *options) (*settings, error) {
	file, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	s := &settings{
		host:       opts.host,
		user:       opts.user,
		password:   opts.password,
		setReferer: opts.setReferer,
		execute:    opts.execute,
		verbosity:  opts.verbosity,
		timeout:    opts.timeout,
	}

	if !flags.Changed("host") {
		s.host = file.Host
	}
	if !flags.Changed("user") {
		s.user = firstNonEmpty(os.Getenv(envUser), file.User, archiva.DefaultUser)
	}
	if !flags.Changed("password") {
		s.password = firstNonEmpty(os.Getenv(envPassword), file.Password)
	}
	if !flags.Changed("set-referer") && file.SetReferer {
		s.setReferer = true
	}
	if !flags.Changed("verbose-level") && file.VerboseLevel != "" {
		s.verbosity = file.VerboseLevel
	}
	if !flags.Changed("timeout") && file.TimeoutDuration() > 0 {
		s.timeout = file.TimeoutDuration()
	}

	if s.host == "" {
		return nil, archerr.New(archerr.ErrCodeInvalidInput, "host is required (use -H/--host or set host in the config file)")
	}
	if s.timeout <= 0 {
		return nil, archerr.New(archerr.ErrCodeInvalidInput, "timeout must be positive, got %s", s.timeout)
	}
	return s, nil
}

func loadConfig(cmd *cobra.Command, opts *options) (*config.File, error) {
	if cmd.Flags().Changed("config") {
		return config.Load(opts.configPath, true)
	}
	path, err := config.DefaultPath()
	if err != nil {
		return &config.File{}, nil
	}
	return config.Load(path, false)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// =============================================================================
// Error Reporting
// =============================================================================

// reportedError marks an error that has already been logged.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// report logs err at error level and marks it as reported.
func (c *CLI) report(err error) error {
	if err == nil || errors.Is(err, context.Canceled) {
		return err
	}
	logError(c.Logger, err)
	return &reportedError{err: err}
}

// Reported reports whether err was already logged by the command, so main
// does not print it a second time.
func Reported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}

func logError(l *log.Logger, err error) {
	var e *archerr.Error
	if !errors.As(err, &e) {
		l.Error(fmt.Sprint(err))
		return
	}
	kv := []any{"code", e.Code}
	if e.StatusCode != 0 {
		kv = append(kv, "status", e.StatusCode)
	}
	if e.Cause != nil {
		kv = append(kv, "cause", e.Cause)
	}
	l.Error(e.Message, kv...)
}
