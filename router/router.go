// Package router is a hash-based client-side router. Routes map a path to a
// template id and a controller action; on every navigation the router tears
// down the previous controller, builds the next one, binds its compiled
// template, invokes the action with the route's parameters and renders it.
package router

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/vcrobe/valkyrja/dom"
	"github.com/vcrobe/valkyrja/tmpl"
	"github.com/vcrobe/valkyrja/view"
)

const (
	DefaultMainID          = "main"
	DefaultErrorTemplateID = "errorTemplate"
)

var (
	ErrNotFound      = errors.New("router: not found")
	ErrInvalidTarget = errors.New(`router: target must be "Controller@action"`)
	ErrNoContainer   = errors.New("router: main content container missing")
)

// Controller is what a route instantiates. Embedding view.Template
// satisfies it.
type Controller interface {
	Mount(doc dom.Document, owner any, logger *slog.Logger)
	SetTemplate(r tmpl.Renderer)
	Render(opts view.Options) error
}

// Remover is implemented by controllers that can be torn down.
type Remover interface {
	Remove()
}

// Action is a controller method bound to a route.
type Action func(c Controller, args Args)

// Route is a registered path.
type Route struct {
	Path           string
	TemplateID     string
	ControllerName string
	ActionName     string
	// Params lists the accepted parameter names in positional order. Nil
	// means the route ignores parameters entirely.
	Params []string
}

type controllerDef struct {
	factory func() Controller
	actions map[string]Action
}

// Hooks lets instrumentation observe navigation. All fields are optional.
type Hooks struct {
	OnNavigate func(path string)
	OnNotFound func(hash string)
}

// Router resolves hashes to routes and drives the controller lifecycle.
type Router struct {
	doc             dom.Document
	templates       *tmpl.Set
	logger          *slog.Logger
	mainID          string
	errorTemplateID string
	hooks           Hooks

	mu          sync.RWMutex
	routes      map[string]Route
	controllers map[string]controllerDef
	prev        Controller
	location    Location
	stop        func()
	binding     int
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Router) {
		r.logger = l
	}
}

// WithMainID names the main content container.
func WithMainID(id string) Option {
	return func(r *Router) {
		r.mainID = id
	}
}

// WithErrorTemplateID names the template rendered for navigation errors.
func WithErrorTemplateID(id string) Option {
	return func(r *Router) {
		r.errorTemplateID = id
	}
}

// WithHooks installs instrumentation hooks.
func WithHooks(h Hooks) Option {
	return func(r *Router) {
		r.hooks = h
	}
}

// New returns a Router rendering into doc. A nil templates set compiles
// page templates with Handlebars.
func New(doc dom.Document, templates *tmpl.Set, opts ...Option) *Router {
	if templates == nil {
		templates = tmpl.NewSet(nil)
	}
	r := &Router{
		doc:             doc,
		templates:       templates,
		mainID:          DefaultMainID,
		errorTemplateID: DefaultErrorTemplateID,
		routes:          make(map[string]Route),
		controllers:     make(map[string]controllerDef),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	return r
}

// Route registers path. target has the form "Controller@action". params
// lists the accepted parameter names; nil disables parameters for the route.
func (r *Router) Route(path, templateID, target string, params []string) error {
	name, action, ok := strings.Cut(target, "@")
	if !ok || name == "" || action == "" {
		r.logger.Error("invalid route target", slog.String("path", path), slog.String("target", target))
		return fmt.Errorf("%w: %q", ErrInvalidTarget, target)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes[path] = Route{
		Path:           path,
		TemplateID:     templateID,
		ControllerName: name,
		ActionName:     action,
		Params:         params,
	}
	return nil
}

// Routes returns a copy of the registered routes keyed by path.
func (r *Router) Routes() map[string]Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]Route, len(r.routes))
	for k, v := range r.routes {
		out[k] = v
	}
	return out
}

// Controller registers an untyped controller factory and its actions.
// Register is the typed variant.
func (r *Router) Controller(name string, factory func() Controller, actions map[string]Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.controllers[name] = controllerDef{factory: factory, actions: actions}
}

// Register registers a controller type under name. Each action receives the
// freshly built controller with its concrete type.
func Register[C Controller](r *Router, name string, factory func() C, actions map[string]func(C, Args)) {
	wrapped := make(map[string]Action, len(actions))
	for actionName, fn := range actions {
		if fn == nil {
			continue
		}
		wrapped[actionName] = func(c Controller, args Args) {
			fn(c.(C), args)
		}
	}
	r.Controller(name, func() Controller { return factory() }, wrapped)
}

// Current returns the active controller, nil before the first successful
// navigation.
func (r *Router) Current() Controller {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.prev
}
