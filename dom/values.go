package dom

import "strings"

// Values is the result of a content getter: one entry per wrapped node, in
// document order. A single wrapped node yields a one-element Values whose
// String is that node's value.
type Values []string

// String returns the scalar value for a single node, or the first value of a
// collection.
func (v Values) String() string {
	if len(v) == 0 {
		return ""
	}
	return v[0]
}

// Multi reports whether the getter ran over more than one node.
func (v Values) Multi() bool {
	return len(v) > 1
}

// Join concatenates the positional values with sep.
func (v Values) Join(sep string) string {
	return strings.Join(v, sep)
}
