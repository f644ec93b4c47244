//go:build js && wasm

package config

import "syscall/js"

// FromGlobals reads window.GLOBALS. Missing entries are zero.
func FromGlobals() Globals {
	g := js.Global().Get("GLOBALS")
	if g.IsUndefined() || g.IsNull() {
		return Globals{}
	}
	return Globals{
		Debug:   truthy(g.Get("DEBUG")),
		IsDev:   truthy(g.Get("IS_DEV")),
		AjaxURL: str(g.Get("AJAX_URL")),
	}
}

func truthy(v js.Value) bool {
	return !v.IsUndefined() && v.Truthy()
}

func str(v js.Value) string {
	if v.Type() != js.TypeString {
		return ""
	}
	return v.String()
}
