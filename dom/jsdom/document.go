//go:build js && wasm

package jsdom

import (
	"syscall/js"

	"github.com/vcrobe/valkyrja/dom"
)

// Document is a dom.Document over window.document.
type Document struct {
	Node
	listeners *registry
}

var _ dom.Document = (*Document)(nil)

// NewDocument wraps the page's document.
func NewDocument() *Document {
	return Wrap(js.Global().Get("document"))
}

// Wrap wraps a document value, such as one created by DOMParser.
func Wrap(v js.Value) *Document {
	d := &Document{listeners: newRegistry()}
	d.Node = Node{doc: d, v: v}
	return d
}

func (d *Document) GetElementByID(id string) dom.Node {
	return d.wrap(d.v.Call("getElementById", id))
}

func (d *Document) CreateElement(tag string) dom.Node {
	return d.wrap(d.v.Call("createElement", tag))
}

func (d *Document) DocumentElement() dom.Node {
	return d.wrap(d.v.Get("documentElement"))
}

func (d *Document) Body() dom.Node {
	return d.wrap(d.v.Get("body"))
}

// ParseFragment parses html in a detached <div>.
func (d *Document) ParseFragment(html string) (nodes []dom.Node, err error) {
	defer recoverJS(&err, "parse fragment")
	div := d.v.Call("createElement", "div")
	div.Set("innerHTML", html)
	return d.list(div.Get("childNodes")), nil
}

// Release unbinds every listener registered through this document and
// frees the callbacks.
func (d *Document) Release() {
	d.listeners.releaseAll()
}

// ReleaseListeners removes and frees every binding on node or inside it.
func (d *Document) ReleaseListeners(node dom.Node) {
	n, ok := node.(*Node)
	if !ok {
		return
	}
	d.listeners.releaseWithin(n.v)
}

// wrap returns d for the document itself and nil for null or undefined.
func (d *Document) wrap(v js.Value) dom.Node {
	if v.IsNull() || v.IsUndefined() {
		return nil
	}
	if v.Equal(d.v) {
		return d
	}
	return &Node{doc: d, v: v}
}

// list converts an HTMLCollection or NodeList into a snapshot.
func (d *Document) list(v js.Value) []dom.Node {
	if !v.Truthy() {
		return nil
	}
	n := v.Length()
	out := make([]dom.Node, 0, n)
	for i := 0; i < n; i++ {
		if node := d.wrap(v.Index(i)); node != nil {
			out = append(out, node)
		}
	}
	return out
}
