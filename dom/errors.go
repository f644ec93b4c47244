package dom

import "errors"

// ErrNoParent is logged when a mutation needs a parent the node lacks.
var ErrNoParent = errors.New("dom: node has no parent")
