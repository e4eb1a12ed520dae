package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	archerr "github.com/matzehuels/archiva-cli/pkg/errors"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	logger.Info("test message")

	if !strings.Contains(buf.String(), "test message") {
		t.Errorf("logger output = %q, want message", buf.String())
	}
}

func TestParseVerbosity(t *testing.T) {
	tests := []struct {
		in      string
		emitErr bool
		emitWrn bool
		emitInf bool
	}{
		{"e", true, false, false},
		{"w", true, true, false},
		{"i", true, true, true},
		{"s", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			level, err := parseVerbosity(tt.in)
			if err != nil {
				t.Fatalf("parseVerbosity(%q) error: %v", tt.in, err)
			}

			for _, c := range []struct {
				name string
				log  func(*log.Logger)
				want bool
			}{
				{"error", func(l *log.Logger) { l.Error("x") }, tt.emitErr},
				{"warn", func(l *log.Logger) { l.Warn("x") }, tt.emitWrn},
				{"info", func(l *log.Logger) { l.Info("x") }, tt.emitInf},
			} {
				var buf bytes.Buffer
				c.log(newLogger(&buf, level))
				if got := buf.Len() > 0; got != c.want {
					t.Errorf("%s emitted = %v, want %v", c.name, got, c.want)
				}
			}
		})
	}
}

func TestParseVerbosityInvalid(t *testing.T) {
	for _, in := range []string{"", "x", "info", "E"} {
		if _, err := parseVerbosity(in); !archerr.Is(err, archerr.ErrCodeInvalidInput) {
			t.Errorf("parseVerbosity(%q) error = %v, want INVALID_INPUT", in, err)
		}
	}
}

func TestLoggerFromContext(t *testing.T) {
	fallback := log.New(&bytes.Buffer{})
	attached := log.New(&bytes.Buffer{})

	if got := loggerFromContext(context.Background(), fallback); got != fallback {
		t.Error("loggerFromContext should return the fallback when none is attached")
	}
	if got := loggerFromContext(withLogger(context.Background(), attached), fallback); got != attached {
		t.Error("loggerFromContext should return the attached logger")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)
	hooks := logHooks{fallback: log.New(&bytes.Buffer{})}
	ctx := withLogger(context.Background(), logger)

	hooks.OnRequest(ctx, "GET", "archiva.example.com", "/x")
	if buf.Len() != 0 {
		t.Errorf("request event should log at debug, got %q", buf.String())
	}

	hooks.OnResponse(ctx, "GET", "archiva.example.com", "/x", 200, 15*time.Millisecond)
	if out := buf.String(); !strings.Contains(out, "GET archiva.example.com/x") || !strings.Contains(out, "status=200") {
		t.Errorf("response event = %q, want method, URL and status", out)
	}

	buf.Reset()
	hooks.OnError(ctx, "GET", "archiva.example.com", "/x", errors.New("connection refused"))
	if out := buf.String(); !strings.Contains(out, "WARN") || !strings.Contains(out, "connection refused") {
		t.Errorf("error event = %q, want a warning with the cause", out)
	}
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	logError(logger, archerr.Remote(503, "maintenance", "versionsList a.B failed"))

	out := buf.String()
	for _, want := range []string{"versionsList a.B failed", "code=REMOTE_ERROR", "status=503"} {
		if !strings.Contains(out, want) {
			t.Errorf("logError output %q should contain %q", out, want)
		}
	}
}
