package logger

import (
	"context"
	"errors"
	"log/slog"
)

// MultiHandler duplicates every record across a set of handlers, so one
// logger can write to stdout and ship to a remote sink at the same time.
// Records are cloned before each delivery, per the slog.Handler contract.
type MultiHandler struct {
	targets []slog.Handler
}

// NewMultiHandler builds a MultiHandler from the non-nil handlers given.
// Nil entries are common here: the remote handler is only constructed when
// a shipping token is configured.
func NewMultiHandler(handlers ...slog.Handler) *MultiHandler {
	targets := make([]slog.Handler, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			targets = append(targets, h)
		}
	}
	return &MultiHandler{targets: targets}
}

// Enabled reports whether at least one target accepts the level.
func (m *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, target := range m.targets {
		if target.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle delivers the record to every target that accepts its level. A
// failing target never blocks delivery to the others; whatever errors occur
// are joined and returned together.
func (m *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, target := range m.targets {
		if !target.Enabled(ctx, r.Level) {
			continue
		}
		if err := target.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WithAttrs applies the attributes to every target.
func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	targets := make([]slog.Handler, len(m.targets))
	for i, target := range m.targets {
		targets[i] = target.WithAttrs(attrs)
	}
	return &MultiHandler{targets: targets}
}

// WithGroup applies the group name to every target.
func (m *MultiHandler) WithGroup(name string) slog.Handler {
	targets := make([]slog.Handler, len(m.targets))
	for i, target := range m.targets {
		targets[i] = target.WithGroup(name)
	}
	return &MultiHandler{targets: targets}
}
