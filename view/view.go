// Package view provides Template, the renderable unit controllers embed. A
// Template is bound to one dom.ElementSet, owns a declarative event map and
// runs an initialize/render/remove lifecycle.
//
// Template has no build tags; it works against any dom.Document backend.
package view

import (
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/vcrobe/valkyrja/dom"
	"github.com/vcrobe/valkyrja/tmpl"
)

const eventSplit = " "

var (
	ErrRemoved    = errors.New("view: template was removed")
	ErrNotMounted = errors.New("view: template is not mounted on a document")
	ErrNoTemplate = errors.New("view: no compiled template assigned")
)

// State is a lifecycle position.
type State int

const (
	StateConstructed State = iota
	StateElementEnsured
	StateInitialized
	StateRendered
	StateRemoved
)

func (s State) String() string {
	switch s {
	case StateConstructed:
		return "constructed"
	case StateElementEnsured:
		return "element-ensured"
	case StateInitialized:
		return "initialized"
	case StateRendered:
		return "rendered"
	case StateRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// EventMap maps "<eventType>[ <selector>]" to a handler. Without a selector
// the handler is bound to the whole element; with one it is delegated.
type EventMap map[string]func(*dom.Event)

// Options is the bag Render accepts. Only the keys listed in AcceptedOptions
// are applied; anything else is ignored.
type Options map[string]any

// AcceptedOptions lists the keys Render copies from Options.
var AcceptedOptions = []string{
	"Model",
	"Collection",
	"elem",
	"sID",
	"attributes",
	"className",
	"tagName",
	"events",
}

// Initializer is implemented by views that set themselves up on each Render,
// after the element is ensured and before events are delegated.
type Initializer interface {
	Initialize()
}

// Cleaner is implemented by views that release resources on Remove.
type Cleaner interface {
	OnRemove()
}

// EventSource is implemented by views that declare their event map as a
// method. It takes precedence over an event map passed through Options.
type EventSource interface {
	Events() EventMap
}

type binding struct {
	eventType string
	selector  string
	listener  *dom.Listener
}

// Template is embedded by controllers. The zero value is usable once Mount
// has attached it to a document.
type Template struct {
	Model      any
	Collection any

	doc      dom.Document
	owner    any
	logger   *slog.Logger
	elem     *dom.ElementSet
	events   EventMap
	template tmpl.Renderer

	sID        string
	attributes map[string]string
	className  string
	tagName    string

	bindings []binding
	state    State
}

// New returns a Template mounted on doc. Controllers usually embed a zero
// Template and let the router call Mount instead.
func New(doc dom.Document, logger *slog.Logger) *Template {
	t := &Template{}
	t.Mount(doc, t, logger)
	return t
}

// Mount attaches the Template to doc. owner is the value embedding the
// Template; its Initializer, Cleaner and EventSource implementations are the
// ones the lifecycle calls. This method is called by the router and should
// not be called by user code.
func (t *Template) Mount(doc dom.Document, owner any, logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	t.doc = doc
	t.owner = owner
	t.logger = logger
	if t.sID == "" {
		t.sID = uuid.NewString()
	}
	if t.tagName == "" {
		t.tagName = "div"
	}
}

// SetTemplate assigns the compiled render function.
func (t *Template) SetTemplate(r tmpl.Renderer) {
	t.template = r
}

// RenderTemplate runs the compiled template with data.
func (t *Template) RenderTemplate(data any) (string, error) {
	if t.template == nil {
		return "", ErrNoTemplate
	}
	return t.template.Render(data)
}

// Document returns the document the Template is mounted on.
func (t *Template) Document() dom.Document {
	return t.doc
}

// Logger returns the Template's logger.
func (t *Template) Logger() *slog.Logger {
	if t.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return t.logger
}

// SID returns the Template's identity.
func (t *Template) SID() string {
	return t.sID
}

// State returns the current lifecycle position.
func (t *Template) State() State {
	return t.state
}

// Elem returns the bound element, nil before the first Render or SetElement.
func (t *Template) Elem() *dom.ElementSet {
	return t.elem
}

// Find resolves selector inside the bound element. An empty selector returns
// the element itself.
func (t *Template) Find(selector string) *dom.ElementSet {
	if t.elem == nil {
		return dom.Wrap(t.doc)
	}
	if selector == "" {
		return t.elem
	}
	return t.elem.Find(selector)
}

// Attributes returns the descriptive attributes metadata.
func (t *Template) Attributes() map[string]string {
	return t.attributes
}

// ClassName returns the descriptive class name metadata.
func (t *Template) ClassName() string {
	return t.className
}

// TagName returns the descriptive tag name metadata, "div" by default.
func (t *Template) TagName() string {
	return t.tagName
}

// SetEvents replaces the event map used when the owner is not an
// EventSource. Already delegated events are left alone until the next
// delegation.
func (t *Template) SetEvents(events EventMap) {
	t.events = events
}

// Render applies the accepted subset of opts, ensures an element exists,
// runs the owner's Initialize hook and delegates the event map.
func (t *Template) Render(opts Options) error {
	if t.state == StateRemoved {
		t.Logger().Error("render after remove", slog.String("sID", t.sID))
		return ErrRemoved
	}
	if t.doc == nil {
		return ErrNotMounted
	}
	t.setOptions(opts)
	t.ensureElement()
	t.state = StateElementEnsured

	if init, ok := t.owner.(Initializer); ok {
		t.callInitialize(init)
	}
	if t.state == StateRemoved {
		return ErrRemoved
	}
	t.state = StateInitialized

	t.DelegateEvents()
	t.state = StateRendered
	return nil
}

// SetElement binds the Template to elem. Bindings made on a previous element
// are undelegated first; with delegate the event map is bound to elem.
func (t *Template) SetElement(elem *dom.ElementSet, delegate bool) *Template {
	if t.elem != nil {
		t.UndelegateEvents()
	}
	t.elem = elem
	if delegate {
		t.DelegateEvents()
	}
	return t
}

// DelegateEvents binds every entry of the event map to the element, in key
// order.
func (t *Template) DelegateEvents() *Template {
	events := t.eventMap()
	if len(events) == 0 {
		return t
	}
	if t.elem == nil {
		t.Logger().Error("delegate events: no element bound", slog.String("sID", t.sID))
		return t
	}
	keys := make([]string, 0, len(events))
	for k := range events {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		fn := events[key]
		if key == "" || fn == nil {
			t.Logger().Error("event or callback method not specified", slog.String("event", key))
			continue
		}
		eventType, selector := splitEvent(key)
		l := dom.Listen(fn)
		t.elem.On(eventType, selector, l)
		t.bindings = append(t.bindings, binding{eventType: eventType, selector: selector, listener: l})
	}
	return t
}

// UndelegateEvents removes every binding DelegateEvents made.
func (t *Template) UndelegateEvents() *Template {
	if t.elem != nil {
		for _, b := range t.bindings {
			t.elem.Off(b.eventType, b.selector, b.listener)
		}
	}
	t.bindings = nil
	return t
}

// Bound returns how many event bindings are active.
func (t *Template) Bound() int {
	return len(t.bindings)
}

// Remove undelegates events, runs the owner's OnRemove hook and detaches the
// bound nodes. The Template must not be rendered again.
func (t *Template) Remove() {
	if t.state == StateRemoved {
		return
	}
	t.UndelegateEvents()
	if c, ok := t.owner.(Cleaner); ok {
		t.callOnRemove(c)
	}
	if t.elem != nil {
		t.elem.Remove()
	}
	t.state = StateRemoved
}

// TriggerEvent dispatches "<eventType>[ <selector>]" on the matching
// sub-element, or on the whole element without a selector.
func (t *Template) TriggerEvent(event string) *Template {
	if event == "" || t.elem == nil {
		t.Logger().Error("trigger event: nothing to trigger", slog.String("event", event))
		return t
	}
	eventType, selector := splitEvent(event)
	t.Find(selector).Trigger(eventType)
	return t
}

func (t *Template) eventMap() EventMap {
	if src, ok := t.owner.(EventSource); ok {
		return src.Events()
	}
	return t.events
}

func (t *Template) ensureElement() {
	if t.elem == nil {
		t.elem = dom.Wrap(t.doc, t.doc)
	}
	t.SetElement(t.elem, false)
}

func (t *Template) setOptions(opts Options) {
	for name, value := range opts {
		if !slices.Contains(AcceptedOptions, name) {
			t.Logger().Debug("ignoring option", slog.String("option", name))
			continue
		}
		ok := true
		switch name {
		case "Model":
			t.Model = value
		case "Collection":
			t.Collection = value
		case "elem":
			switch v := value.(type) {
			case *dom.ElementSet:
				t.SetElement(v, false)
			case string:
				t.SetElement(dom.New(t.doc, v), false)
			default:
				ok = false
			}
		case "sID":
			ok = assign(&t.sID, value)
		case "attributes":
			ok = assign(&t.attributes, value)
		case "className":
			ok = assign(&t.className, value)
		case "tagName":
			ok = assign(&t.tagName, value)
		case "events":
			ok = assign(&t.events, value)
		}
		if !ok {
			t.Logger().Error("option has the wrong type", slog.String("option", name))
		}
	}
}

// assign stores value into dst when it has dst's type.
func assign[T any](dst *T, value any) bool {
	v, ok := value.(T)
	if ok {
		*dst = v
	}
	return ok
}

func splitEvent(event string) (eventType, selector string) {
	eventType, selector, _ = strings.Cut(event, eventSplit)
	return eventType, strings.TrimSpace(selector)
}
