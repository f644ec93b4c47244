//go:build js && wasm

// Package dialogs opens the browser's modal dialogs.
package dialogs

import (
	"syscall/js"
)

func Alert(msg string) {
	js.Global().Call("alert", msg)
}

// Prompt asks for a line of text. It reports false when the user cancels.
func Prompt(message, def string) (string, bool) {
	result := js.Global().Call("prompt", message, def)
	if result.IsNull() || result.IsUndefined() {
		return "", false
	}
	return result.String(), true
}

func Confirm(message string) bool {
	return js.Global().Call("confirm", message).Bool()
}
