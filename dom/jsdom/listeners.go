//go:build js && wasm

package jsdom

import (
	"sync"
	"syscall/js"

	"github.com/vcrobe/valkyrja/dom"
)

type binding struct {
	node      js.Value
	eventType string
	fn        js.Func
}

// registry tracks the js.Func created for every (node, type, listener)
// binding so removal can find and release it.
type registry struct {
	mu       sync.Mutex
	bindings map[*dom.Listener][]binding
}

func newRegistry() *registry {
	return &registry{bindings: make(map[*dom.Listener][]binding)}
}

func (r *registry) add(doc *Document, node js.Value, eventType string, l *dom.Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bindings[l] {
		if b.eventType == eventType && b.node.Equal(node) {
			return
		}
	}
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		evt := args[0]
		e := &dom.Event{
			Type:          str(evt.Get("type")),
			Target:        doc.wrap(evt.Get("target")),
			CurrentTarget: doc.wrap(evt.Get("currentTarget")),
			Bubbles:       evt.Get("bubbles").Truthy(),
		}
		l.Handle(e)
		if e.Stopped() {
			evt.Call("stopPropagation")
		}
		return nil
	})
	node.Call("addEventListener", eventType, fn)
	r.bindings[l] = append(r.bindings[l], binding{node: node, eventType: eventType, fn: fn})
}

func (r *registry) remove(node js.Value, eventType string, l *dom.Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := r.bindings[l]
	for i, b := range list {
		if b.eventType != eventType || !b.node.Equal(node) {
			continue
		}
		node.Call("removeEventListener", eventType, b.fn)
		b.fn.Release()
		list = append(list[:i], list[i+1:]...)
		break
	}
	if len(list) == 0 {
		delete(r.bindings, l)
		return
	}
	r.bindings[l] = list
}

// releaseWithin frees the bindings on root and its descendants.
func (r *registry) releaseWithin(root js.Value) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for l, list := range r.bindings {
		kept := list[:0]
		for _, b := range list {
			if b.node.Equal(root) || root.Call("contains", b.node).Bool() {
				b.node.Call("removeEventListener", b.eventType, b.fn)
				b.fn.Release()
				continue
			}
			kept = append(kept, b)
		}
		if len(kept) == 0 {
			delete(r.bindings, l)
			continue
		}
		r.bindings[l] = kept
	}
}

func (r *registry) releaseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for l, list := range r.bindings {
		for _, b := range list {
			b.node.Call("removeEventListener", b.eventType, b.fn)
			b.fn.Release()
		}
		delete(r.bindings, l)
	}
}
