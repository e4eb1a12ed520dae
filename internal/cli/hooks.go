package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks reports every HTTP exchange of the session through the logger.
// It implements observability.HTTPHooks.
type logHooks struct {
	fallback *log.Logger
}

func (h logHooks) OnRequest(ctx context.Context, method, host, path string) {
	loggerFromContext(ctx, h.fallback).Debug(method+" "+host+path, "event", "request")
}

func (h logHooks) OnResponse(ctx context.Context, method, host, path string, status int, d time.Duration) {
	loggerFromContext(ctx, h.fallback).Info(method+" "+host+path,
		"status", status, "elapsed", d.Round(time.Millisecond))
}

func (h logHooks) OnError(ctx context.Context, method, host, path string, err error) {
	loggerFromContext(ctx, h.fallback).Warn(method+" "+host+path, "err", err)
}
