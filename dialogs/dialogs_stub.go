//go:build !(js && wasm)

// Package dialogs opens the browser's modal dialogs. Outside the browser
// the messages go to the console, Prompt answers with its default and
// Confirm declines.
package dialogs

import "github.com/vcrobe/valkyrja/console"

func Alert(msg string) {
	console.Info("alert:", msg)
}

func Prompt(message, def string) (string, bool) {
	console.Info("prompt:", message)
	return def, false
}

func Confirm(message string) bool {
	console.Info("confirm:", message)
	return false
}
