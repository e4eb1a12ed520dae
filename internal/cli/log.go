package cli

import (
	"context"
	"io"
	"math"

	"github.com/charmbracelet/log"

	archerr "github.com/matzehuels/archiva-cli/pkg/errors"
)

// Verbosity levels accepted by -V/--verbose-level.
const (
	verbosityError    = "e"
	verbosityWarning  = "w"
	verbosityInfo     = "i"
	verbositySuppress = "s"
)

// levelSuppress is above every level the logger emits.
const levelSuppress = log.Level(math.MaxInt32)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// parseVerbosity maps a verbosity letter to a log level.
func parseVerbosity(v string) (log.Level, error) {
	switch v {
	case verbosityError:
		return log.ErrorLevel, nil
	case verbosityWarning:
		return log.WarnLevel, nil
	case verbosityInfo:
		return log.InfoLevel, nil
	case verbositySuppress:
		return levelSuppress, nil
	default:
		return 0, archerr.New(archerr.ErrCodeInvalidInput,
			"invalid verbose level %q (choose from e, w, i, s)", v)
	}
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or fallback if none is
// attached.
func loggerFromContext(ctx context.Context, fallback *log.Logger) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return fallback
}
