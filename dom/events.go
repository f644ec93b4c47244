package dom

import "github.com/vcrobe/valkyrja/console"

// On binds l to eventType on every wrapped node. With a non-empty selector
// the binding is delegated: on each firing the ancestor chain of the event
// target is walked with Closest and l only runs when a match is found. The
// match is exposed as Event.SelectorTarget. Nothing is memoised between
// firings.
func (s *ElementSet) On(eventType, selector string, l *Listener) *ElementSet {
	return s.handleEvent(bindAdd, eventType, selector, l)
}

// Off removes a binding previously made with the same eventType, selector and
// listener. An empty eventType strips every listener, see OffAll.
func (s *ElementSet) Off(eventType, selector string, l *Listener) *ElementSet {
	if eventType == "" {
		return s.OffAll()
	}
	return s.handleEvent(bindRemove, eventType, selector, l)
}

// OffAll replaces every wrapped node with a deep clone of itself, dropping all
// of its listeners at once. The set is rebound to the clones. Listeners on
// descendants are lost too and cannot be restored.
func (s *ElementSet) OffAll() *ElementSet {
	releaser, _ := s.doc.(ListenerReleaser)
	for i, n := range s.nodes {
		parent := n.ParentNode()
		if parent == nil {
			console.Warn("off: node has no parent, listeners kept", n.NodeName())
			continue
		}
		clone := n.CloneNode(true)
		parent.ReplaceChild(clone, n)
		s.nodes[i] = clone
		if releaser != nil {
			releaser.ReleaseListeners(n)
		}
	}
	return s
}

// Trigger dispatches a non-bubbling custom event of eventType on every
// wrapped node.
func (s *ElementSet) Trigger(eventType string) *ElementSet {
	if eventType == "" {
		console.Error("trigger: event type was not provided")
		return s
	}
	for _, n := range s.nodes {
		n.DispatchEvent(eventType)
	}
	return s
}

type bindOp int

const (
	bindAdd bindOp = iota
	bindRemove
)

func (s *ElementSet) handleEvent(op bindOp, eventType, selector string, l *Listener) *ElementSet {
	if eventType == "" || l == nil {
		console.Error("event type or listener was not provided", eventType, selector)
		return s
	}

	final := l
	if selector != "" {
		final = l.delegate(selector, func() *Listener {
			return Listen(func(e *Event) {
				match := s.Closest(selector, e.Target).Get(0)
				if match == nil {
					return
				}
				e.SelectorTarget = match
				l.Handle(e)
			})
		})
	}

	for _, n := range s.nodes {
		switch op {
		case bindAdd:
			n.AddEventListener(eventType, final)
		case bindRemove:
			n.RemoveEventListener(eventType, final)
		}
	}
	return s
}
