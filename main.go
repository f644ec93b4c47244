//go:build js && wasm

// The demo application compiled to WebAssembly. Build it with
// GOOS=js GOARCH=wasm and serve it with cmd/valkyrja-serve.
package main

import (
	"github.com/vcrobe/valkyrja/app"
	"github.com/vcrobe/valkyrja/config"
	"github.com/vcrobe/valkyrja/console"
	"github.com/vcrobe/valkyrja/demo"
)

func main() {
	cfg, err := config.Parse(demo.ConfigYAML)
	if err != nil {
		console.SetDebug(true)
		console.Error("config:", err.Error())
		return
	}
	cfg.Overlay(config.FromGlobals())

	a, err := app.New(cfg, app.Browser(), app.WithTemplates(demo.Templates()))
	if err != nil {
		console.SetDebug(true)
		console.Error("app:", err.Error())
		return
	}
	if err := demo.Register(a); err != nil {
		a.Logger.Error("register demo", "error", err)
		return
	}
	if err := a.Start(); err != nil {
		a.Logger.Error("start", "error", err)
		return
	}

	// Keep the Go program running
	select {}
}
