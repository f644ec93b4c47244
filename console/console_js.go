//go:build js && wasm

package console

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"syscall/js"
)

func emit(_ context.Context, _ slog.Level, method string, args []any) {
	if !Debugging() {
		return
	}
	console := js.Global().Get("console")
	console.Call(method, toJS(args)...)
}

// toJS converts arguments js.ValueOf would panic on into strings.
func toJS(args []any) []any {
	out := make([]any, len(args))
	for i, a := range args {
		switch v := a.(type) {
		case nil, bool, string, int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64, float32, float64, js.Value:
			out[i] = v
		default:
			out[i] = fmt.Sprint(v)
		}
	}
	return out
}

func sink() slog.Handler {
	return newConsoleHandler()
}

// consoleHandler routes slog records to the console method matching their level.
type consoleHandler struct {
	byMethod map[string]slog.Handler
}

func newConsoleHandler() *consoleHandler {
	h := &consoleHandler{byMethod: make(map[string]slog.Handler, 4)}
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	for _, m := range []string{"debug", "info", "warn", "error"} {
		h.byMethod[m] = slog.NewTextHandler(consoleWriter{method: m}, opts)
	}
	return h
}

func (h *consoleHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

func (h *consoleHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.byMethod[methodFor(r.Level)].Handle(ctx, r)
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := &consoleHandler{byMethod: make(map[string]slog.Handler, len(h.byMethod))}
	for m, inner := range h.byMethod {
		next.byMethod[m] = inner.WithAttrs(attrs)
	}
	return next
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	next := &consoleHandler{byMethod: make(map[string]slog.Handler, len(h.byMethod))}
	for m, inner := range h.byMethod {
		next.byMethod[m] = inner.WithGroup(name)
	}
	return next
}

func methodFor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "error"
	case level >= slog.LevelWarn:
		return "warn"
	case level >= slog.LevelInfo:
		return "info"
	default:
		return "debug"
	}
}

type consoleWriter struct {
	method string
}

func (w consoleWriter) Write(p []byte) (int, error) {
	js.Global().Get("console").Call(w.method, strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}
