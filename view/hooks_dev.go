//go:build dev

package view

// callInitialize invokes Initialize in development mode.
// In dev mode, panics propagate to aid debugging and fast failure.
func (t *Template) callInitialize(i Initializer) {
	i.Initialize()
}

// callOnRemove invokes OnRemove in development mode.
func (t *Template) callOnRemove(c Cleaner) {
	c.OnRemove()
}
