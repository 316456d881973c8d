// Package logger provides structured logging utilities for the application.
package logger

import (
	"context"
	"log/slog"

	"github.com/rowanlock/coursefinder-go/internal/ctxutil"
)

// ContextHandler is a slog.Handler decorator that extracts the request ID
// from the context and adds it as an attribute to log records, so call
// sites never pass it manually.
type ContextHandler struct {
	handler slog.Handler
}

// NewContextHandler creates a new ContextHandler that wraps the provided handler.
func NewContextHandler(handler slog.Handler) *ContextHandler {
	return &ContextHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
// This delegates to the wrapped handler.
func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle adds the context request ID, if any, before delegating to the
// wrapped handler. Canceling the context does not affect record processing
// (per the slog.Handler contract).
func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if requestID, ok := ctxutil.GetRequestID(ctx); ok && requestID != "" {
		r.AddAttrs(slog.String("request_id", requestID))
	}
	return h.handler.Handle(ctx, r)
}

// WithAttrs returns a new ContextHandler whose attributes consist of
// both the receiver's attributes and the arguments.
func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{handler: h.handler.WithAttrs(attrs)}
}

// WithGroup returns a new ContextHandler with the given group name prepended
// to the current group name.
func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{handler: h.handler.WithGroup(name)}
}
