//go:build !(js && wasm)

package config

import (
	"os"
	"strconv"
)

// FromGlobals reads the page globals from VALKYRJA_DEBUG, VALKYRJA_IS_DEV
// and VALKYRJA_AJAX_URL outside the browser.
func FromGlobals() Globals {
	debug, _ := strconv.ParseBool(os.Getenv("VALKYRJA_DEBUG"))
	dev, _ := strconv.ParseBool(os.Getenv("VALKYRJA_IS_DEV"))
	return Globals{Debug: debug, IsDev: dev, AjaxURL: os.Getenv("VALKYRJA_AJAX_URL")}
}
