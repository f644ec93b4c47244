package dom

import (
	"strings"

	"github.com/vcrobe/valkyrja/console"
)

const spaceSplit = " "

// ElementSet wraps zero, one or many platform nodes.
//
// Resolution is recomputed on every construction; two ElementSets built from
// the same selector and context hold the same nodes but share no state.
type ElementSet struct {
	doc      Document
	selector string
	context  []Node
	nodes    []Node
}

// New resolves selector against context, or against the whole document when
// no context is given.
//
// Resolution order:
//   - "#id" uses getElementById on the document, ignoring context;
//   - "#id rest" resolves the id, then resolves rest inside it;
//   - ".class" (no space) uses getElementsByClassName inside context;
//   - a bare token (no space) uses getElementsByTagName inside context;
//   - anything else goes to querySelectorAll inside context.
func New(doc Document, selector string, context ...Node) *ElementSet {
	s := &ElementSet{doc: doc, selector: selector, context: context}
	if strings.TrimSpace(selector) == "" {
		return s
	}
	parents := context
	if len(parents) == 0 {
		parents = []Node{doc}
	}
	s.nodes = s.resolve(parents, selector)
	return s
}

// Wrap builds an ElementSet over nodes that are already resolved. Nil nodes
// are dropped.
func Wrap(doc Document, nodes ...Node) *ElementSet {
	s := &ElementSet{doc: doc}
	for _, n := range nodes {
		if n != nil {
			s.nodes = append(s.nodes, n)
		}
	}
	return s
}

func (s *ElementSet) resolve(parents []Node, selector string) []Node {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return nil
	}
	hasSpace := strings.Contains(selector, spaceSplit)

	switch first := selector[0]; {
	case first == '#':
		selector = selector[1:]
		if !hasSpace {
			return nonNil(s.doc.GetElementByID(selector))
		}
		found := s.doc.GetElementByID(selector[:strings.Index(selector, spaceSplit)])
		if found == nil {
			return nil
		}
		// The remainder is derived by deleting the id text from the selector,
		// not by parsing it. This only differs from a structural split when
		// the element's id is not the leading token.
		return s.resolve([]Node{found}, strings.Replace(selector, found.ID(), "", 1))
	case first == '.' && !hasSpace:
		return collect(parents, func(p Node) []Node {
			return p.GetElementsByClassName(selector[1:])
		})
	case !hasSpace:
		return collect(parents, func(p Node) []Node {
			return p.GetElementsByTagName(selector)
		})
	default:
		return collect(parents, func(p Node) []Node {
			found, err := p.QuerySelectorAll(selector)
			if err != nil {
				console.Error("invalid selector", selector, err)
				return nil
			}
			return found
		})
	}
}

// collect runs lookup on every parent and merges the results without
// duplicates, preserving first-seen order.
func collect(parents []Node, lookup func(Node) []Node) []Node {
	if len(parents) == 1 {
		return lookup(parents[0])
	}
	var out []Node
	for _, p := range parents {
		for _, n := range lookup(p) {
			if !containsNode(out, n) {
				out = append(out, n)
			}
		}
	}
	return out
}

func containsNode(nodes []Node, n Node) bool {
	for _, m := range nodes {
		if m.IsSameNode(n) {
			return true
		}
	}
	return false
}

func nonNil(n Node) []Node {
	if n == nil {
		return nil
	}
	return []Node{n}
}

// Document returns the document the set resolves against.
func (s *ElementSet) Document() Document {
	return s.doc
}

// Selector returns the selector the set was built from, if any.
func (s *ElementSet) Selector() string {
	return s.selector
}

// Context returns the nodes the selector was scoped to.
func (s *ElementSet) Context() []Node {
	return s.context
}

// Nodes returns the wrapped nodes.
func (s *ElementSet) Nodes() []Node {
	return s.nodes
}

// Len returns the number of wrapped nodes.
func (s *ElementSet) Len() int {
	return len(s.nodes)
}

// IsEmpty reports whether the set wraps no node.
func (s *ElementSet) IsEmpty() bool {
	return len(s.nodes) == 0
}

// Get returns the node at index. When index is out of range it falls back to
// the whole wrapped value: the single node of a one-node set, or nil.
func (s *ElementSet) Get(index int) Node {
	if index >= 0 && index < len(s.nodes) {
		return s.nodes[index]
	}
	if len(s.nodes) == 1 {
		return s.nodes[0]
	}
	return nil
}

// Find resolves selector inside the wrapped nodes.
func (s *ElementSet) Find(selector string) *ElementSet {
	if len(s.nodes) == 0 {
		return Wrap(s.doc)
	}
	return Wrap(s.doc, s.resolve(s.nodes, selector)...)
}

// Parent wraps the parent of the first node.
func (s *ElementSet) Parent() *ElementSet {
	first := s.Get(0)
	if first == nil {
		return Wrap(s.doc)
	}
	return Wrap(s.doc, first.ParentNode())
}

// Closest walks from the given node (or the first wrapped node) up the
// ancestor chain and returns the first element matching selector.
//
// Matching is a token approximation, not a CSS match: a selector containing
// '#' compares ids, one containing '.' compares class tokens, anything else
// compares the tag name case-insensitively. The first character is stripped for id
// and class selectors. Ids and classes are compared as space-padded
// substrings, so "#a" matches id "a" and ".b" matches class "a b".
func (s *ElementSet) Closest(selector string, from Node) *ElementSet {
	if selector == "" {
		return Wrap(s.doc)
	}
	elem := from
	if elem == nil {
		elem = s.Get(0)
	}

	kind := "class"
	switch {
	case strings.Contains(selector, "#"):
		kind = "id"
		selector = selector[1:]
	case strings.Contains(selector, "."):
		selector = selector[1:]
	default:
		kind = "tag"
	}

	for elem != nil && elem.IsElement() {
		var matched bool
		switch kind {
		case "id":
			matched = strings.Contains(spaceSplit+elem.ID()+spaceSplit, spaceSplit+selector+spaceSplit)
		case "class":
			matched = strings.Contains(spaceSplit+elem.ClassName()+spaceSplit, spaceSplit+selector+spaceSplit)
		default:
			matched = strings.EqualFold(elem.NodeName(), selector)
		}
		if matched {
			return Wrap(s.doc, elem)
		}
		elem = elem.ParentNode()
	}
	return Wrap(s.doc)
}
