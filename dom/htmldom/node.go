package htmldom

import (
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vcrobe/valkyrja/dom"
)

var _ dom.Node = (*Node)(nil)

// Node is a dom.Node over an *html.Node.
type Node struct {
	doc *Document
	n   *html.Node
}

func (n *Node) htmlNode() *html.Node {
	return n.n
}

func unwrap(node dom.Node) *html.Node {
	if node == nil {
		return nil
	}
	if t, ok := node.(interface{ htmlNode() *html.Node }); ok {
		return t.htmlNode()
	}
	return nil
}

func (n *Node) NodeName() string {
	switch n.n.Type {
	case html.ElementNode:
		return strings.ToUpper(n.n.Data)
	case html.DocumentNode:
		return "#document"
	case html.TextNode:
		return "#text"
	case html.CommentNode:
		return "#comment"
	case html.DoctypeNode:
		return n.n.Data
	default:
		return ""
	}
}

func (n *Node) IsElement() bool {
	return n.n.Type == html.ElementNode
}

func (n *Node) ID() string {
	return attr(n.n, "id")
}

func (n *Node) ClassName() string {
	return attr(n.n, "class")
}

func (n *Node) ClassList() dom.ClassList {
	return classList{n: n}
}

func (n *Node) ParentNode() dom.Node {
	return n.doc.wrap(n.n.Parent)
}

func (n *Node) FirstChild() dom.Node {
	return n.doc.wrap(n.n.FirstChild)
}

func (n *Node) IsSameNode(other dom.Node) bool {
	return other != nil && unwrap(other) == n.n
}

func (n *Node) Attribute(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, a := range n.n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func (n *Node) SetAttribute(name, value string) {
	name = strings.ToLower(name)
	for i, a := range n.n.Attr {
		if a.Namespace == "" && a.Key == name {
			n.n.Attr[i].Val = value
			return
		}
	}
	n.n.Attr = append(n.n.Attr, html.Attribute{Key: name, Val: value})
}

func (n *Node) RemoveAttribute(name string) {
	name = strings.ToLower(name)
	for i, a := range n.n.Attr {
		if a.Namespace == "" && a.Key == name {
			n.n.Attr = append(n.n.Attr[:i], n.n.Attr[i+1:]...)
			return
		}
	}
}

// Value reads the form value: the text of a <textarea>, the selected option
// of a <select>, otherwise the value attribute.
func (n *Node) Value() string {
	switch n.n.DataAtom {
	case atom.Textarea:
		return n.TextContent()
	case atom.Select:
		var options []*html.Node
		walk(n.n, func(m *html.Node) bool {
			if m.DataAtom == atom.Option {
				options = append(options, m)
			}
			return true
		})
		for _, o := range options {
			if _, selected := (&Node{doc: n.doc, n: o}).Attribute("selected"); selected {
				return optionValue(o)
			}
		}
		if len(options) > 0 {
			return optionValue(options[0])
		}
		return ""
	default:
		return attr(n.n, "value")
	}
}

func optionValue(o *html.Node) string {
	if v, ok := (&Node{n: o}).Attribute("value"); ok {
		return v
	}
	return textOf(o)
}

func (n *Node) SetValue(value string) {
	switch n.n.DataAtom {
	case atom.Textarea:
		n.SetTextContent(value)
	case atom.Select:
		walk(n.n, func(m *html.Node) bool {
			if m.DataAtom == atom.Option {
				o := &Node{doc: n.doc, n: m}
				if optionValue(m) == value {
					o.SetAttribute("selected", "")
				} else {
					o.RemoveAttribute("selected")
				}
			}
			return true
		})
	default:
		n.SetAttribute("value", value)
	}
}

func (n *Node) TextContent() string {
	return textOf(n.n)
}

func textOf(n *html.Node) string {
	var b strings.Builder
	walk(n, func(m *html.Node) bool {
		if m.Type == html.TextNode {
			b.WriteString(m.Data)
		}
		return true
	})
	return b.String()
}

func (n *Node) SetTextContent(text string) {
	n.clearChildren()
	if text != "" {
		n.n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

func (n *Node) InnerHTML() string {
	var b strings.Builder
	raw := n.n.Type == html.ElementNode && rawText[n.n.Data]
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		if raw && c.Type == html.TextNode {
			b.WriteString(c.Data)
			continue
		}
		if err := html.Render(&b, c); err != nil {
			return b.String()
		}
	}
	return b.String()
}

// rawText elements serialize their text children unescaped.
var rawText = map[string]bool{
	"iframe": true, "noembed": true, "noframes": true, "noscript": true,
	"plaintext": true, "script": true, "style": true, "xmp": true,
}

func (n *Node) SetInnerHTML(markup string) error {
	n.clearChildren()
	if markup == "" {
		return nil
	}
	context := n.n
	if context.Type != html.ElementNode {
		context = &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return fmt.Errorf("htmldom: set innerHTML: %w", err)
	}
	for _, c := range nodes {
		n.n.AppendChild(c)
	}
	return nil
}

func (n *Node) clearChildren() {
	for c := n.n.FirstChild; c != nil; {
		next := c.NextSibling
		n.n.RemoveChild(c)
		c = next
	}
}

// AppendChild moves child under n, detaching it from its current parent.
func (n *Node) AppendChild(child dom.Node) {
	c := detach(child)
	if c == nil {
		return
	}
	n.n.AppendChild(c)
}

// InsertBefore inserts child before ref; a nil ref appends.
func (n *Node) InsertBefore(child, ref dom.Node) {
	c := detach(child)
	if c == nil {
		return
	}
	r := unwrap(ref)
	if r == nil || r.Parent != n.n {
		n.n.AppendChild(c)
		return
	}
	n.n.InsertBefore(c, r)
}

func (n *Node) RemoveChild(child dom.Node) {
	c := unwrap(child)
	if c == nil || c.Parent != n.n {
		return
	}
	n.n.RemoveChild(c)
}

func (n *Node) ReplaceChild(newChild, oldChild dom.Node) {
	old := unwrap(oldChild)
	if old == nil || old.Parent != n.n {
		return
	}
	n.InsertBefore(newChild, oldChild)
	n.n.RemoveChild(old)
}

func detach(node dom.Node) *html.Node {
	c := unwrap(node)
	if c != nil && c.Parent != nil {
		c.Parent.RemoveChild(c)
	}
	return c
}

// CloneNode copies the node, and with deep its subtree. Listeners are not
// copied.
func (n *Node) CloneNode(deep bool) dom.Node {
	return n.doc.wrap(clone(n.n, deep))
}

func clone(n *html.Node, deep bool) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
	}
	if deep {
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			c.AppendChild(clone(child, true))
		}
	}
	return c
}

// GetElementsByClassName matches descendants carrying every class in names.
func (n *Node) GetElementsByClassName(names string) []dom.Node {
	wanted := strings.Fields(names)
	if len(wanted) == 0 {
		return nil
	}
	return n.doc.wrapAll(descendants(n.n, func(m *html.Node) bool {
		have := strings.Fields(attr(m, "class"))
		for _, w := range wanted {
			if !containsString(have, w) {
				return false
			}
		}
		return true
	}))
}

// GetElementsByTagName matches descendants by case-insensitive tag; "*"
// matches every element.
func (n *Node) GetElementsByTagName(tag string) []dom.Node {
	return n.doc.wrapAll(descendants(n.n, func(m *html.Node) bool {
		return tag == "*" || strings.EqualFold(m.Data, tag)
	}))
}

// QuerySelectorAll matches descendants against a CSS selector group.
func (n *Node) QuerySelectorAll(selector string) ([]dom.Node, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("htmldom: compile selector %q: %w", selector, err)
	}
	var out []*html.Node
	for _, m := range sel.MatchAll(n.n) {
		if m != n.n {
			out = append(out, m)
		}
	}
	return n.doc.wrapAll(out), nil
}

func (n *Node) AddEventListener(eventType string, l *dom.Listener) {
	n.doc.addListener(n.n, eventType, l)
}

func (n *Node) RemoveEventListener(eventType string, l *dom.Listener) {
	n.doc.removeListener(n.n, eventType, l)
}

// DispatchEvent runs the listeners bound to this node only.
func (n *Node) DispatchEvent(eventType string) {
	self := n.doc.wrap(n.n)
	n.doc.invoke(n.n, &dom.Event{Type: eventType, Target: self})
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type classList struct {
	n *Node
}

func (c classList) tokens() []string {
	return strings.Fields(c.n.ClassName())
}

func (c classList) set(tokens []string) {
	c.n.SetAttribute("class", strings.Join(tokens, " "))
}

func (c classList) Add(name string) {
	tokens := c.tokens()
	if containsString(tokens, name) {
		return
	}
	c.set(append(tokens, name))
}

func (c classList) Remove(name string) {
	tokens := c.tokens()
	kept := tokens[:0]
	for _, t := range tokens {
		if t != name {
			kept = append(kept, t)
		}
	}
	c.set(kept)
}

func (c classList) Toggle(name string) bool {
	if c.Contains(name) {
		c.Remove(name)
		return false
	}
	c.Add(name)
	return true
}

func (c classList) Contains(name string) bool {
	return containsString(c.tokens(), name)
}
