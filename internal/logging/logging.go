// Package logging wraps log/slog the way rcornwell-S370/util/logger wraps
// it: a minimal slog.Handler that timestamps each record, writes it to a
// host-supplied io.Writer, and appends any attributes attached with
// Logger.With, such as the "component" tag Machine.AttachLogger gives the
// CPU's logger.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

// Handler is a small, mutex-guarded slog.Handler: one line per record,
// "time level message key=value ...", no JSON encoding. Verbose structured
// logging is not a JR-100 emulation concern; this exists so a headless
// test run and an interactive session both get readable output without
// pulling in a third-party logging library (see DESIGN.md: no pack repo
// imports one directly).
type Handler struct {
	out   io.Writer
	mu    *sync.Mutex
	level slog.Leveler
	attrs []slog.Attr
}

// New returns a Handler writing to out at the given minimum level.
func New(out io.Writer, level slog.Leveler) *Handler {
	return &Handler{out: out, mu: &sync.Mutex{}, level: level}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	line := fmt.Sprintf("%s %s %s", r.Time.Format(time.RFC3339), r.Level, r.Message)
	for _, a := range h.attrs {
		line += fmt.Sprintf(" %s=%v", a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		line += fmt.Sprintf(" %s=%v", a.Key, a.Value)
		return true
	})

	_, err := fmt.Fprintln(h.out, line)
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{out: h.out, mu: h.mu, level: h.level, attrs: append(append([]slog.Attr{}, h.attrs...), attrs...)}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	// Groups are not needed by this emulator's flat subsystem/attr shape;
	// fall back to attaching the group name as a single attribute.
	return h.WithAttrs([]slog.Attr{slog.String("group", name)})
}

// New logger wired for a given writer/level, ready for Machine.AttachLogger.
func NewLogger(out io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(New(out, level))
}
