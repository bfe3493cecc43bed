package logger

import (
	"context"
	"log/slog"
)

// MultiHandler writes every record to a primary handler and copies it to
// secondary sinks. Sink failures are dropped: a remote log service being down
// must not turn into errors on the local log path.
type MultiHandler struct {
	primary slog.Handler
	sinks   []slog.Handler
}

// NewMultiHandler creates a MultiHandler. Nil sinks are ignored.
func NewMultiHandler(primary slog.Handler, sinks ...slog.Handler) *MultiHandler {
	kept := make([]slog.Handler, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			kept = append(kept, s)
		}
	}
	return &MultiHandler{primary: primary, sinks: kept}
}

// Enabled reports whether the primary handler or any sink accepts the level.
func (h *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if h.primary.Enabled(ctx, level) {
		return true
	}
	for _, s := range h.sinks {
		if s.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle dispatches a clone of the record to each enabled handler and returns
// the primary handler's error only.
func (h *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, s := range h.sinks {
		if s.Enabled(ctx, r.Level) {
			_ = s.Handle(ctx, r.Clone())
		}
	}
	if !h.primary.Enabled(ctx, r.Level) {
		return nil
	}
	return h.primary.Handle(ctx, r)
}

// WithAttrs returns a new MultiHandler with the attributes applied to all handlers.
func (h *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.derive(func(s slog.Handler) slog.Handler { return s.WithAttrs(attrs) })
}

// WithGroup returns a new MultiHandler with the group applied to all handlers.
func (h *MultiHandler) WithGroup(name string) slog.Handler {
	return h.derive(func(s slog.Handler) slog.Handler { return s.WithGroup(name) })
}

func (h *MultiHandler) derive(fn func(slog.Handler) slog.Handler) *MultiHandler {
	sinks := make([]slog.Handler, len(h.sinks))
	for i, s := range h.sinks {
		sinks[i] = fn(s)
	}
	return &MultiHandler{primary: fn(h.primary), sinks: sinks}
}
