// Package htmldom is an in-memory dom.Document built on golang.org/x/net/html.
// It backs native builds: tests, server-side rendering of views and tools
// that need the library without a browser.
//
// CSS selector queries go through cascadia. Events are dispatched
// synchronously; Fire simulates a bubbling user event.
package htmldom

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vcrobe/valkyrja/dom"
)

// Compile-time assertion that Document satisfies dom.Document.
var _ dom.Document = (*Document)(nil)

// Document is an in-memory HTML document.
type Document struct {
	*Node

	mu        sync.Mutex
	listeners map[*html.Node]map[string][]*dom.Listener
}

// Parse reads a full HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("htmldom: parse document: %w", err)
	}
	return newDocument(root), nil
}

// ParseString parses a full HTML document from a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// MustParse is ParseString for fixtures; it panics on error.
func MustParse(s string) *Document {
	d, err := ParseString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// NewDocument returns an empty <html><head></head><body></body></html>.
func NewDocument() *Document {
	return MustParse("<!DOCTYPE html><html><head></head><body></body></html>")
}

func newDocument(root *html.Node) *Document {
	d := &Document{listeners: make(map[*html.Node]map[string][]*dom.Listener)}
	d.Node = &Node{doc: d, n: root}
	return d
}

// wrap returns the dom.Node for n, or a nil interface for a nil n.
func (d *Document) wrap(n *html.Node) dom.Node {
	if n == nil {
		return nil
	}
	if n == d.Node.n {
		return d
	}
	return &Node{doc: d, n: n}
}

func (d *Document) wrapAll(nodes []*html.Node) []dom.Node {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]dom.Node, len(nodes))
	for i, n := range nodes {
		out[i] = d.wrap(n)
	}
	return out
}

// GetElementByID returns the first element in document order with the id.
func (d *Document) GetElementByID(id string) dom.Node {
	if id == "" {
		return nil
	}
	var found *html.Node
	walk(d.Node.n, func(n *html.Node) bool {
		if n.Type == html.ElementNode && attr(n, "id") == id {
			found = n
			return false
		}
		return true
	})
	return d.wrap(found)
}

// CreateElement returns a detached element.
func (d *Document) CreateElement(tag string) dom.Node {
	tag = strings.ToLower(tag)
	return d.wrap(&html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))})
}

// DocumentElement returns the <html> element.
func (d *Document) DocumentElement() dom.Node {
	for c := d.Node.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return d.wrap(c)
		}
	}
	return nil
}

// Body returns the <body> element.
func (d *Document) Body() dom.Node {
	nodes := d.GetElementsByTagName("body")
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

// ParseFragment parses markup in the context of a <div>.
func (d *Document) ParseFragment(markup string) ([]dom.Node, error) {
	nodes, err := html.ParseFragment(strings.NewReader(markup), &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
	if err != nil {
		return nil, fmt.Errorf("htmldom: parse fragment: %w", err)
	}
	return d.wrapAll(nodes), nil
}

// String renders the whole document.
func (d *Document) String() string {
	var b strings.Builder
	if err := html.Render(&b, d.Node.n); err != nil {
		return ""
	}
	return b.String()
}

// Fire dispatches a bubbling event of eventType from target up to the
// document, the way a user interaction would.
func (d *Document) Fire(target dom.Node, eventType string) {
	t, ok := target.(interface{ htmlNode() *html.Node })
	if !ok || t.htmlNode() == nil {
		return
	}
	e := &dom.Event{Type: eventType, Target: target, Bubbles: true}
	for n := t.htmlNode(); n != nil; n = n.Parent {
		d.invoke(n, e)
		if e.Stopped() {
			return
		}
	}
}

func (d *Document) invoke(n *html.Node, e *dom.Event) {
	d.mu.Lock()
	registered := d.listeners[n][e.Type]
	snapshot := make([]*dom.Listener, len(registered))
	copy(snapshot, registered)
	d.mu.Unlock()

	e.CurrentTarget = d.wrap(n)
	for _, l := range snapshot {
		l.Handle(e)
	}
}

func (d *Document) addListener(n *html.Node, eventType string, l *dom.Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	byType, ok := d.listeners[n]
	if !ok {
		byType = make(map[string][]*dom.Listener)
		d.listeners[n] = byType
	}
	for _, existing := range byType[eventType] {
		if existing == l {
			return
		}
	}
	byType[eventType] = append(byType[eventType], l)
}

func (d *Document) removeListener(n *html.Node, eventType string, l *dom.Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	registered := d.listeners[n][eventType]
	for i, existing := range registered {
		if existing == l {
			d.listeners[n][eventType] = append(registered[:i:i], registered[i+1:]...)
			return
		}
	}
}

// ReleaseListeners forgets the listeners bound to node and its descendants.
func (d *Document) ReleaseListeners(node dom.Node) {
	root := unwrap(node)
	if root == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	walk(root, func(n *html.Node) bool {
		delete(d.listeners, n)
		return true
	})
}

// BoundNodes returns how many nodes have listener state.
func (d *Document) BoundNodes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners)
}

// ListenerCount returns how many listeners of eventType are bound to node.
func (d *Document) ListenerCount(node dom.Node, eventType string) int {
	t, ok := node.(interface{ htmlNode() *html.Node })
	if !ok {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners[t.htmlNode()][eventType])
}

// walk visits the subtree rooted at n in document order until visit
// returns false.
func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if !visit(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, visit) {
			return false
		}
	}
	return true
}

// descendants collects the elements below n, excluding n, that match.
func descendants(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, func(m *html.Node) bool {
			if m.Type == html.ElementNode && match(m) {
				out = append(out, m)
			}
			return true
		})
	}
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}
