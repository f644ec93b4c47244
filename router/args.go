package router

import "strconv"

// Args are the route parameters in declaration order. A nil entry is a
// declared parameter the hash did not assign.
type Args []*string

// Get returns the i-th parameter and whether it was assigned.
func (a Args) Get(i int) (string, bool) {
	if i < 0 || i >= len(a) || a[i] == nil {
		return "", false
	}
	return *a[i], true
}

// String returns the i-th parameter, or "" when unassigned.
func (a Args) String(i int) string {
	v, _ := a.Get(i)
	return v
}

// Int parses the i-th parameter. Unassigned parameters yield 0 and false.
func (a Args) Int(i int) (int, bool, error) {
	v, ok := a.Get(i)
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.Atoi(v)
	return n, true, err
}
