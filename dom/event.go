package dom

import "sync"

// Event is the payload handed to listeners.
type Event struct {
	Type string
	// Target is the node the event originated from.
	Target Node
	// CurrentTarget is the node whose listener is running.
	CurrentTarget Node
	// SelectorTarget is the ancestor of Target matched by a delegation
	// selector. It is nil for direct bindings.
	SelectorTarget Node
	Bubbles        bool

	stopped bool
}

// StopPropagation prevents the event from reaching further ancestors.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Stopped reports whether StopPropagation was called.
func (e *Event) Stopped() bool {
	return e.stopped
}

// Listener is a comparable handle around an event callback. Go funcs cannot
// be compared, so bindings are added and removed by *Listener identity.
type Listener struct {
	fn func(*Event)

	mu        sync.Mutex
	delegates map[string]*Listener
}

// Listen wraps fn in a Listener.
func Listen(fn func(*Event)) *Listener {
	return &Listener{fn: fn}
}

// Handle invokes the callback. A nil Listener is a no-op.
func (l *Listener) Handle(e *Event) {
	if l == nil || l.fn == nil {
		return
	}
	l.fn(e)
}

// delegate returns the delegating wrapper for selector, creating it with
// build on first use so that Off can find the same wrapper On registered.
func (l *Listener) delegate(selector string, build func() *Listener) *Listener {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.delegates == nil {
		l.delegates = make(map[string]*Listener)
	}
	d, ok := l.delegates[selector]
	if !ok {
		d = build()
		l.delegates[selector] = d
	}
	return d
}
