// Package dom wraps platform DOM nodes behind ElementSet, a jQuery-like
// handle over zero, one or many nodes with selector resolution, content and
// class manipulation, and delegated events.
//
// The package has no build tags. Platform nodes are reached through the Node
// and Document interfaces; dom/jsdom implements them over syscall/js and
// dom/htmldom implements them in memory for native builds and tests.
package dom

// Node is the platform node contract ElementSet is written against.
type Node interface {
	// NodeName is the upper-case tag name for elements, "#document" for the
	// document and "#text" for text nodes.
	NodeName() string
	IsElement() bool
	ID() string
	ClassName() string
	ClassList() ClassList

	// ParentNode returns nil at the root of the tree.
	ParentNode() Node
	FirstChild() Node
	// IsSameNode reports whether other refers to the same platform node.
	IsSameNode(other Node) bool

	Attribute(name string) (string, bool)
	SetAttribute(name, value string)
	RemoveAttribute(name string)

	Value() string
	SetValue(value string)
	TextContent() string
	SetTextContent(text string)
	InnerHTML() string
	SetInnerHTML(html string) error

	AppendChild(child Node)
	InsertBefore(child, ref Node)
	RemoveChild(child Node)
	ReplaceChild(newChild, oldChild Node)
	CloneNode(deep bool) Node

	GetElementsByClassName(names string) []Node
	GetElementsByTagName(tag string) []Node
	QuerySelectorAll(selector string) ([]Node, error)

	AddEventListener(eventType string, l *Listener)
	RemoveEventListener(eventType string, l *Listener)
	// DispatchEvent fires a non-bubbling custom event of the given type.
	DispatchEvent(eventType string)
}

// ClassList mirrors Element.classList.
type ClassList interface {
	Add(name string)
	Remove(name string)
	Toggle(name string) bool
	Contains(name string) bool
}

// Document is the root node plus the document-only lookups.
type Document interface {
	Node
	GetElementByID(id string) Node
	CreateElement(tag string) Node
	DocumentElement() Node
	Body() Node
	// ParseFragment parses html the way a detached <div> would and returns
	// its child nodes.
	ParseFragment(html string) ([]Node, error)
}

// ListenerReleaser is implemented by documents that keep per-node listener
// state. ReleaseListeners drops the bindings of node and its descendants
// once node has left the tree.
type ListenerReleaser interface {
	ReleaseListeners(node Node)
}
