//go:build js && wasm

package jsdom

import (
	"syscall/js"
)

// Location is window.location. It satisfies router.Location.
type Location struct {
	window js.Value
}

// NewLocation wraps the page's window.
func NewLocation() *Location {
	return &Location{window: js.Global()}
}

func (l *Location) Hash() string {
	return str(l.window.Get("location").Get("hash"))
}

func (l *Location) SetHash(hash string) {
	l.window.Get("location").Set("hash", hash)
}

// Watch calls fn on load and on every hashchange. When the document has
// already loaded fn runs immediately.
func (l *Location) Watch(fn func()) func() {
	handler := js.FuncOf(func(js.Value, []js.Value) any {
		fn()
		return nil
	})
	l.window.Call("addEventListener", "hashchange", handler)
	loaded := str(l.window.Get("document").Get("readyState")) == "complete"
	if loaded {
		fn()
	} else {
		l.window.Call("addEventListener", "load", handler)
	}
	return func() {
		l.window.Call("removeEventListener", "hashchange", handler)
		if !loaded {
			l.window.Call("removeEventListener", "load", handler)
		}
		handler.Release()
	}
}

// LocalStorage is window.localStorage. It satisfies cache.Storage.
type LocalStorage struct {
	v js.Value
}

// NewLocalStorage wraps window.localStorage.
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{v: js.Global().Get("localStorage")}
}

func (s *LocalStorage) GetItem(key string) (string, bool) {
	v := s.v.Call("getItem", key)
	if v.IsNull() {
		return "", false
	}
	return v.String(), true
}

// SetItem stores value. A full quota surfaces as an error.
func (s *LocalStorage) SetItem(key, value string) (err error) {
	defer recoverJS(&err, "localStorage.setItem")
	s.v.Call("setItem", key, value)
	return nil
}

func (s *LocalStorage) RemoveItem(key string) {
	s.v.Call("removeItem", key)
}

func (s *LocalStorage) Clear() {
	s.v.Call("clear")
}

func (s *LocalStorage) Length() int {
	return s.v.Get("length").Int()
}

// Cookies is document.cookie. It satisfies cookies.Source.
type Cookies struct {
	doc js.Value
}

// NewCookies wraps document.cookie.
func NewCookies() *Cookies {
	return &Cookies{doc: js.Global().Get("document")}
}

func (c *Cookies) Cookie() string {
	return str(c.doc.Get("cookie"))
}

func (c *Cookies) SetCookie(cookie string) {
	c.doc.Set("cookie", cookie)
}

// UserAgent returns navigator.userAgent.
func UserAgent() string {
	return str(js.Global().Get("navigator").Get("userAgent"))
}
