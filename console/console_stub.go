//go:build !(js && wasm)

package console

// Native builds write through slog so tests and server-side tools can
// capture the output with SetOutput.

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	outputMu sync.RWMutex
	output   io.Writer = os.Stderr
)

// SetOutput redirects native log output. It is not available in wasm builds.
func SetOutput(w io.Writer) {
	outputMu.Lock()
	defer outputMu.Unlock()
	output = w
}

func sink() slog.Handler {
	outputMu.RLock()
	defer outputMu.RUnlock()
	return slog.NewTextHandler(output, &slog.HandlerOptions{Level: slog.LevelDebug})
}

func emit(ctx context.Context, level slog.Level, method string, args []any) {
	if !Debugging() {
		return
	}
	Logger().Log(ctx, level, sprint(args), slog.String("console", method))
}
