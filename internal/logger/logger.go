// Package logger provides structured logging utilities for the application.
// It wraps log/slog with JSON formatting, optional Better Stack log
// shipping, and context-based request IDs.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	slogbetterstack "github.com/samber/slog-betterstack"
)

// Logger is the application logger
type Logger struct {
	*slog.Logger
	async *AsyncHandler
}

// Options configures the logger pipeline. A non-empty BetterStackToken
// enables remote log shipping alongside stdout; shipping runs through an
// async handler so a slow ingest endpoint never blocks request paths.
type Options struct {
	Level               string
	BetterStackToken    string
	BetterStackEndpoint string
}

// New creates a stdout-only logger instance with JSON formatting
func New(level string) *Logger {
	return NewWithWriter(level, os.Stdout)
}

// NewWithWriter creates a new logger instance with JSON formatting writing to the provided writer
func NewWithWriter(level string, w io.Writer) *Logger {
	handler := jsonHandler(level, w)
	return &Logger{Logger: slog.New(NewContextHandler(handler))}
}

// NewWithOptions creates the full logger pipeline: a stdout JSON handler,
// plus an async Better Stack handler when a token is configured, fanned out
// through a MultiHandler and wrapped so request IDs flow in from context.
func NewWithOptions(opts Options) *Logger {
	handlers := []slog.Handler{jsonHandler(opts.Level, os.Stdout)}

	var async *AsyncHandler
	if opts.BetterStackToken != "" {
		remote := slogbetterstack.Option{
			Level:    parseLevel(opts.Level),
			Token:    opts.BetterStackToken,
			Endpoint: opts.BetterStackEndpoint,
		}.NewBetterstackHandler()
		async = NewAsyncHandler(remote, AsyncOptions{})
		handlers = append(handlers, async)
	}

	return &Logger{
		Logger: slog.New(NewContextHandler(NewMultiHandler(handlers...))),
		async:  async,
	}
}

// Shutdown flushes pending remote logs up to the configured timeout.
// Safe to call on a stdout-only logger.
func (l *Logger) Shutdown(ctx context.Context) error {
	if l == nil || l.async == nil {
		return nil
	}
	return l.async.Shutdown(ctx)
}

// Fatal logs at error level and exits the process.
func (l *Logger) Fatal(msg string, args ...any) {
	l.Error(msg, args...)
	_ = l.Shutdown(context.Background())
	os.Exit(1)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func jsonHandler(level string, w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Key = "timestamp"
				// slog uses RFC3339Nano by default, which is fine
			}
			if a.Key == slog.LevelKey {
				a.Key = "level"
				level := a.Value.String()
				if level == "WARN" {
					level = "warning"
				} else {
					level = strings.ToLower(level)
				}
				a.Value = slog.StringValue(level)
			}
			if a.Key == slog.MessageKey {
				a.Key = "message"
			}
			return a
		},
	}
	return slog.NewJSONHandler(w, opts)
}

// WithModule creates a new entry with module field
func (l *Logger) WithModule(module string) *Logger {
	return &Logger{Logger: l.With("module", module), async: l.async}
}

// WithError creates a new entry with error field
func (l *Logger) WithError(err error) *Logger {
	return &Logger{Logger: l.With("error", err), async: l.async}
}

// WithField creates a new entry with a single field
func (l *Logger) WithField(key string, value any) *Logger {
	return &Logger{Logger: l.With(key, value), async: l.async}
}

// WithFields creates a new entry with multiple fields
func (l *Logger) WithFields(fields map[string]any) *Logger {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return &Logger{Logger: l.With(args...), async: l.async}
}
