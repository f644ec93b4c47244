// Package console is the library's logger. Every call is gated by a single
// debug flag; while the flag is off nothing is written.
//
// In js/wasm builds output goes to the browser console, natively it goes to
// a slog text handler on stderr.
package console

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

var debug atomic.Bool

var (
	timersMu sync.Mutex
	timers   = make(map[string]time.Time)
)

// SetDebug turns logging on or off for every severity.
func SetDebug(on bool) {
	debug.Store(on)
}

// Debugging reports whether the debug flag is set.
func Debugging() bool {
	return debug.Load()
}

// Logger returns a structured logger whose records pass the debug gate.
func Logger() *slog.Logger {
	return slog.New(gate{next: sink()})
}

// Log writes a console.log line.
func Log(args ...any) {
	emit(context.Background(), slog.LevelInfo, "log", args)
}

// Info writes a console.info line.
func Info(args ...any) {
	emit(context.Background(), slog.LevelInfo, "info", args)
}

// Warn writes a console.warn line.
func Warn(args ...any) {
	emit(context.Background(), slog.LevelWarn, "warn", args)
}

// Error writes a console.error line.
func Error(args ...any) {
	emit(context.Background(), slog.LevelError, "error", args)
}

// Debug writes a console.debug line.
func Debug(args ...any) {
	emit(context.Background(), slog.LevelDebug, "debug", args)
}

// Time starts a timer under label. TimeEnd logs the elapsed duration.
func Time(label string) {
	if !Debugging() {
		return
	}
	timersMu.Lock()
	timers[label] = time.Now()
	timersMu.Unlock()
}

// TimeEnd logs the time elapsed since Time(label) and forgets the timer.
func TimeEnd(label string) {
	if !Debugging() {
		return
	}
	timersMu.Lock()
	start, ok := timers[label]
	delete(timers, label)
	timersMu.Unlock()
	if !ok {
		Warn("Timer '" + label + "' does not exist")
		return
	}
	Log(label+":", time.Since(start).String())
}

// gate drops every record while the debug flag is off.
type gate struct {
	next slog.Handler
}

func (g gate) Enabled(ctx context.Context, level slog.Level) bool {
	return debug.Load() && g.next.Enabled(ctx, level)
}

func (g gate) Handle(ctx context.Context, r slog.Record) error {
	return g.next.Handle(ctx, r)
}

func (g gate) WithAttrs(attrs []slog.Attr) slog.Handler {
	return gate{next: g.next.WithAttrs(attrs)}
}

func (g gate) WithGroup(name string) slog.Handler {
	return gate{next: g.next.WithGroup(name)}
}

// sprint joins console arguments the way the browser console prints them.
func sprint(args []any) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		parts = append(parts, fmt.Sprint(a))
	}
	return strings.Join(parts, " ")
}
