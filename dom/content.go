package dom

import "github.com/vcrobe/valkyrja/console"

// Val returns the value of every wrapped node.
func (s *ElementSet) Val() Values {
	return s.collectValues(Node.Value)
}

// SetVal assigns value to every wrapped node. An empty value is treated as a
// getter call and leaves the nodes untouched.
func (s *ElementSet) SetVal(value string) *ElementSet {
	if value == "" {
		console.Error("val: value was not provided")
		return s
	}
	for _, n := range s.nodes {
		n.SetValue(value)
	}
	return s
}

// Text returns the textContent of every wrapped node.
func (s *ElementSet) Text() Values {
	return s.collectValues(Node.TextContent)
}

// SetText replaces the children of every wrapped node with text. The text is
// parsed as markup, like SetHTML.
func (s *ElementSet) SetText(text string) *ElementSet {
	return s.SetHTML(text)
}

// HTML returns the innerHTML of every wrapped node.
func (s *ElementSet) HTML() Values {
	return s.collectValues(Node.InnerHTML)
}

// SetHTML replaces the children of every wrapped node with the parsed markup.
func (s *ElementSet) SetHTML(html string) *ElementSet {
	return s.handleHTML(pendReplace, html)
}

// Append parses html and appends a copy of the result to every wrapped node.
func (s *ElementSet) Append(html string) *ElementSet {
	return s.handleHTML(pendAppend, html)
}

// Prepend parses html and inserts a copy of the result before the first
// child of every wrapped node.
func (s *ElementSet) Prepend(html string) *ElementSet {
	return s.handleHTML(pendPrepend, html)
}

// AppendNodes appends deep clones of nodes to every wrapped node.
func (s *ElementSet) AppendNodes(nodes ...Node) *ElementSet {
	for _, target := range s.nodes {
		pend(pendAppend, nodes, target)
	}
	return s
}

// Empty removes every child of every wrapped node.
func (s *ElementSet) Empty() *ElementSet {
	for _, n := range s.nodes {
		if err := n.SetInnerHTML(""); err != nil {
			console.Error("empty:", err)
		}
	}
	return s
}

// Remove detaches every wrapped node from its parent. Nodes without a parent
// are skipped.
func (s *ElementSet) Remove() *ElementSet {
	for _, n := range s.nodes {
		parent := n.ParentNode()
		if parent == nil {
			console.Warn("remove:", ErrNoParent, n.NodeName())
			continue
		}
		parent.RemoveChild(n)
	}
	return s
}

func (s *ElementSet) collectValues(get func(Node) string) Values {
	if len(s.nodes) == 0 {
		return nil
	}
	out := make(Values, len(s.nodes))
	for i, n := range s.nodes {
		out[i] = get(n)
	}
	return out
}

type pendMode int

const (
	pendReplace pendMode = iota
	pendAppend
	pendPrepend
)

func (s *ElementSet) handleHTML(mode pendMode, html string) *ElementSet {
	if html == "" && mode != pendReplace {
		console.Error("html was not provided")
		return s
	}
	nodes, err := s.doc.ParseFragment(html)
	if err != nil {
		console.Error("could not parse html:", err)
		return s
	}
	for _, target := range s.nodes {
		pend(mode, nodes, target)
	}
	return s
}

func pend(mode pendMode, nodes []Node, target Node) {
	if mode == pendReplace {
		if err := target.SetInnerHTML(""); err != nil {
			console.Error("html:", err)
			return
		}
	}
	// Each prepended node goes before the current first child, so a
	// multi-node fragment lands in reverse order.
	for _, n := range nodes {
		clone := n.CloneNode(true)
		if mode == pendPrepend {
			target.InsertBefore(clone, target.FirstChild())
			continue
		}
		target.AppendChild(clone)
	}
}
