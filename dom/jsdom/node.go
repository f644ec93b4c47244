//go:build js && wasm

package jsdom

import (
	"fmt"
	"syscall/js"

	"github.com/vcrobe/valkyrja/dom"
)

// Node is a dom.Node over a browser node.
type Node struct {
	doc *Document
	v   js.Value
}

var _ dom.Node = (*Node)(nil)

// JSValue returns the underlying js.Value.
func (n *Node) JSValue() js.Value {
	return n.v
}

func (n *Node) NodeName() string {
	return str(n.v.Get("nodeName"))
}

func (n *Node) IsElement() bool {
	return n.v.Get("nodeType").Int() == 1
}

func (n *Node) ID() string {
	return str(n.v.Get("id"))
}

func (n *Node) ClassName() string {
	return str(n.v.Get("className"))
}

func (n *Node) ClassList() dom.ClassList {
	return classList{n.v.Get("classList")}
}

func (n *Node) ParentNode() dom.Node {
	return n.doc.wrap(n.v.Get("parentNode"))
}

func (n *Node) FirstChild() dom.Node {
	return n.doc.wrap(n.v.Get("firstChild"))
}

func (n *Node) IsSameNode(other dom.Node) bool {
	o, ok := unwrap(other)
	return ok && n.v.Equal(o)
}

func (n *Node) Attribute(name string) (string, bool) {
	if !n.IsElement() || !n.v.Call("hasAttribute", name).Bool() {
		return "", false
	}
	return n.v.Call("getAttribute", name).String(), true
}

func (n *Node) SetAttribute(name, value string) {
	if n.IsElement() {
		n.v.Call("setAttribute", name, value)
	}
}

func (n *Node) RemoveAttribute(name string) {
	if n.IsElement() {
		n.v.Call("removeAttribute", name)
	}
}

func (n *Node) Value() string {
	return str(n.v.Get("value"))
}

func (n *Node) SetValue(value string) {
	n.v.Set("value", value)
}

func (n *Node) TextContent() string {
	return str(n.v.Get("textContent"))
}

func (n *Node) SetTextContent(text string) {
	n.v.Set("textContent", text)
}

func (n *Node) InnerHTML() string {
	return str(n.v.Get("innerHTML"))
}

func (n *Node) SetInnerHTML(html string) (err error) {
	defer recoverJS(&err, "set innerHTML")
	n.v.Set("innerHTML", html)
	return nil
}

func (n *Node) AppendChild(child dom.Node) {
	if c, ok := unwrap(child); ok {
		n.v.Call("appendChild", c)
	}
}

func (n *Node) InsertBefore(child, ref dom.Node) {
	c, ok := unwrap(child)
	if !ok {
		return
	}
	r, ok := unwrap(ref)
	if !ok {
		r = js.Null()
	}
	n.v.Call("insertBefore", c, r)
}

func (n *Node) RemoveChild(child dom.Node) {
	if c, ok := unwrap(child); ok && c.Get("parentNode").Equal(n.v) {
		n.v.Call("removeChild", c)
	}
}

func (n *Node) ReplaceChild(newChild, oldChild dom.Node) {
	nc, ok := unwrap(newChild)
	if !ok {
		return
	}
	if oc, ok := unwrap(oldChild); ok {
		n.v.Call("replaceChild", nc, oc)
	}
}

// CloneNode copies the node. Listeners are not copied, as in the browser.
func (n *Node) CloneNode(deep bool) dom.Node {
	return n.doc.wrap(n.v.Call("cloneNode", deep))
}

func (n *Node) GetElementsByClassName(names string) []dom.Node {
	return n.doc.list(n.v.Call("getElementsByClassName", names))
}

func (n *Node) GetElementsByTagName(tag string) []dom.Node {
	return n.doc.list(n.v.Call("getElementsByTagName", tag))
}

func (n *Node) QuerySelectorAll(selector string) (nodes []dom.Node, err error) {
	defer recoverJS(&err, "querySelectorAll "+selector)
	return n.doc.list(n.v.Call("querySelectorAll", selector)), nil
}

func (n *Node) AddEventListener(eventType string, l *dom.Listener) {
	n.doc.listeners.add(n.doc, n.v, eventType, l)
}

func (n *Node) RemoveEventListener(eventType string, l *dom.Listener) {
	n.doc.listeners.remove(n.v, eventType, l)
}

// DispatchEvent fires new CustomEvent(eventType), which does not bubble.
func (n *Node) DispatchEvent(eventType string) {
	evt := js.Global().Get("CustomEvent").New(eventType)
	n.v.Call("dispatchEvent", evt)
}

func (n *Node) String() string {
	return fmt.Sprintf("<%s id=%q>", n.NodeName(), n.ID())
}

type classList struct {
	v js.Value
}

func (c classList) Add(name string) {
	if c.v.Truthy() {
		c.v.Call("add", name)
	}
}

func (c classList) Remove(name string) {
	if c.v.Truthy() {
		c.v.Call("remove", name)
	}
}

func (c classList) Toggle(name string) bool {
	if !c.v.Truthy() {
		return false
	}
	return c.v.Call("toggle", name).Bool()
}

func (c classList) Contains(name string) bool {
	return c.v.Truthy() && c.v.Call("contains", name).Bool()
}

// jsValuer is implemented by Node and Document.
type jsValuer interface {
	JSValue() js.Value
}

func unwrap(n dom.Node) (js.Value, bool) {
	v, ok := n.(jsValuer)
	if !ok || v == nil {
		return js.Value{}, false
	}
	return v.JSValue(), true
}

func str(v js.Value) string {
	if v.Type() != js.TypeString {
		return ""
	}
	return v.String()
}

// recoverJS turns a thrown JavaScript exception into an error.
func recoverJS(err *error, op string) {
	r := recover()
	if r == nil {
		return
	}
	if jsErr, ok := r.(js.Error); ok {
		*err = fmt.Errorf("jsdom: %s: %w", op, jsErr)
		return
	}
	panic(r)
}
