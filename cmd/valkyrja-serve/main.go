// Command valkyrja-serve serves the demo application: the page, the
// compiled main.wasm and wasm_exec.js from a directory, and the JSON API
// the ajax helper talks to.
//
//	GOOS=js GOARCH=wasm go build -o web/main.wasm .
//	cp "$(go env GOROOT)/lib/wasm/wasm_exec.js" web/
//	go run ./cmd/valkyrja-serve -dir web
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vcrobe/valkyrja/demo"
	"github.com/vcrobe/valkyrja/devserver"
)

func main() {
	addr := flag.String("addr", ":8080", "The address to listen on.")
	dir := flag.String("dir", "web", "The directory holding main.wasm and wasm_exec.js.")
	brotliLevel := flag.Int("brotli", 6, "Brotli compression level, 0 disables compression.")
	metrics := flag.Bool("metrics", true, "Expose Prometheus metrics on /metrics.")
	verbose := flag.Bool("v", false, "Log every request.")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	opts := []devserver.Option{
		devserver.WithAddr(*addr),
		devserver.WithStaticDir(*dir),
		devserver.WithIndex(demo.IndexHTML),
	}
	if *brotliLevel > 0 {
		opts = append(opts, devserver.WithBrotli(*brotliLevel))
	}
	if *metrics {
		opts = append(opts, devserver.WithMetrics())
	}

	srv, err := devserver.New(logger, opts...)
	if err != nil {
		logger.Error("configure server", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(); err != nil {
		logger.Error("start server", slog.Any("error", err))
		os.Exit(1)
	}
	<-ctx.Done()

	logger.Info("shutting down")
	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Error("shutdown", slog.Any("error", err))
		os.Exit(1)
	}
}
