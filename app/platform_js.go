//go:build js && wasm

package app

import "github.com/vcrobe/valkyrja/dom/jsdom"

// Browser returns the Platform of the current page.
func Browser() Platform {
	doc := jsdom.NewDocument()
	return Platform{
		Document:  doc,
		Location:  jsdom.NewLocation(),
		Storage:   jsdom.NewLocalStorage(),
		Cookies:   jsdom.NewCookies(),
		UserAgent: jsdom.UserAgent(),
		Release:   doc.Release,
	}
}
