package logging

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// TeeHandler fans every record out to all destination handlers, typically the
// tinted console handler plus the sqlite handler.
type TeeHandler struct {
	mu       sync.Mutex
	handlers []slog.Handler
}

func NewTeeHandler(handlers ...slog.Handler) *TeeHandler {
	return &TeeHandler{handlers: handlers}
}

func (h *TeeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, dest := range h.handlers {
		if dest.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *TeeHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	var errs []error
	for _, dest := range h.handlers {
		if !dest.Enabled(ctx, r.Level) {
			continue
		}
		if err := dest.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h *TeeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	next := make([]slog.Handler, len(h.handlers))
	for i, dest := range h.handlers {
		next[i] = dest.WithAttrs(attrs)
	}
	return NewTeeHandler(next...)
}

func (h *TeeHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := make([]slog.Handler, len(h.handlers))
	for i, dest := range h.handlers {
		next[i] = dest.WithGroup(name)
	}
	return NewTeeHandler(next...)
}
