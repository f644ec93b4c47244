package dom

import (
	"strings"

	"github.com/vcrobe/valkyrja/console"
)

// AddClass adds every space-separated class in className to every node.
func (s *ElementSet) AddClass(className string) *ElementSet {
	return s.handleClass(className, ClassList.Add)
}

// RemoveClass removes every space-separated class in className.
func (s *ElementSet) RemoveClass(className string) *ElementSet {
	return s.handleClass(className, ClassList.Remove)
}

// ToggleClass toggles every space-separated class in className.
func (s *ElementSet) ToggleClass(className string) *ElementSet {
	return s.handleClass(className, func(c ClassList, name string) { c.Toggle(name) })
}

// HasClass reports whether the first node carries className. When several
// classes are passed only the first one is tested.
func (s *ElementSet) HasClass(className string) bool {
	if className == "" {
		console.Error("hasClass: class name was not provided")
		return false
	}
	first := s.Get(0)
	if first == nil {
		return false
	}
	if i := strings.Index(className, spaceSplit); i >= 0 {
		className = className[:i]
	}
	return first.ClassList().Contains(className)
}

func (s *ElementSet) handleClass(className string, apply func(ClassList, string)) *ElementSet {
	if className == "" {
		console.Error("class name was not provided")
		return s
	}
	classes := strings.Split(className, spaceSplit)
	for _, n := range s.nodes {
		list := n.ClassList()
		for _, c := range classes {
			if c == "" {
				continue
			}
			apply(list, c)
		}
	}
	return s
}

// AttrGet returns attribute attr of the first node and whether it is set.
func (s *ElementSet) AttrGet(attr string) (string, bool) {
	if attr == "" {
		console.Error("attrGet: attribute was not provided")
		return "", false
	}
	first := s.Get(0)
	if first == nil {
		return "", false
	}
	return first.Attribute(attr)
}

// AttrSet sets attr to value on every node. Empty arguments are a no-op.
func (s *ElementSet) AttrSet(attr, value string) *ElementSet {
	if attr == "" || value == "" {
		console.Error("attrSet: attribute or value was not provided", attr)
		return s
	}
	for _, n := range s.nodes {
		n.SetAttribute(attr, value)
	}
	return s
}

// AttrRemove removes attr from every node.
func (s *ElementSet) AttrRemove(attr string) *ElementSet {
	if attr == "" {
		console.Error("attrRemove: attribute was not provided")
		return s
	}
	for _, n := range s.nodes {
		n.RemoveAttribute(attr)
	}
	return s
}

// DataGet reads the data-<name> attribute of the first node.
func (s *ElementSet) DataGet(name string) (string, bool) {
	if name == "" {
		console.Error("dataGet: name was not provided")
		return "", false
	}
	return s.AttrGet("data-" + name)
}

// DataSet writes the data-<name> attribute on every node.
func (s *ElementSet) DataSet(name, value string) *ElementSet {
	if name == "" || value == "" {
		console.Error("dataSet: name or value was not provided", name)
		return s
	}
	return s.AttrSet("data-"+name, value)
}

// DataRemove removes the data-<name> attribute from every node.
func (s *ElementSet) DataRemove(name string) *ElementSet {
	if name == "" {
		console.Error("dataRemove: name was not provided")
		return s
	}
	return s.AttrRemove("data-" + name)
}
