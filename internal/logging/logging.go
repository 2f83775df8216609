// Package logging configures log/slog for the CLI and turns client events
// into debug records.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	eventbus "github.com/hanpama/graphy/internal/eventbus"
	events "github.com/hanpama/graphy/internal/events"
	reqid "github.com/hanpama/graphy/internal/reqid"
)

// Setup configures slog.Default() to write to stderr with the given format
// ("text" or "json") and level ("debug", "info", "warn", "error").
func Setup(format, level string) *slog.Logger {
	logger := New(os.Stderr, format, level)
	slog.SetDefault(logger)
	return logger
}

// New returns a logger writing to w without touching the default logger.
func New(w io.Writer, format, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel converts a level string to slog.Level.
// Defaults to slog.LevelInfo for unrecognized values.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard returns a *slog.Logger that discards all output.
func Discard() *slog.Logger { return slog.New(slog.DiscardHandler) }

// Subscribe logs operation, HTTP and introspection events from the global
// bus at debug level. Failures are logged at warn.
func Subscribe(logger *slog.Logger) (unsubscribe func()) {
	unsubs := []func(){
		eventbus.Subscribe(func(ctx context.Context, e events.OperationStart) {
			logger.DebugContext(ctx, "operation start", withID(ctx,
				"operation", e.OperationName,
				"type", e.OperationType,
				"variables", e.Variables,
				"query", e.Query)...)
		}),
		eventbus.Subscribe(func(ctx context.Context, e events.OperationFinish) {
			args := withID(ctx,
				"operation", e.OperationName,
				"type", e.OperationType,
				"errors", len(e.Errors),
				"duration", e.Duration)
			if e.Err != nil {
				logger.WarnContext(ctx, "operation failed", append(args, "error", e.Err)...)
				return
			}
			logger.DebugContext(ctx, "operation finish", args...)
		}),
		eventbus.Subscribe(func(ctx context.Context, e events.HTTPRequestFinish) {
			args := withID(ctx,
				"endpoint", e.Endpoint,
				"operation", e.OperationName,
				"status", e.Status,
				"duration", e.Duration)
			if e.Err != nil {
				logger.WarnContext(ctx, "http request failed", append(args, "error", e.Err)...)
				return
			}
			logger.DebugContext(ctx, "http request", args...)
		}),
		eventbus.Subscribe(func(ctx context.Context, e events.IntrospectionFinish) {
			args := []any{"endpoint", e.Endpoint, "bytes", e.Bytes, "duration", e.Duration}
			if e.Err != nil {
				logger.WarnContext(ctx, "introspection failed", append(args, "error", e.Err)...)
				return
			}
			logger.DebugContext(ctx, "introspection", args...)
		}),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

func withID(ctx context.Context, args ...any) []any {
	if id, ok := reqid.FromContext(ctx); ok {
		return append([]any{"op_id", id}, args...)
	}
	return args
}
