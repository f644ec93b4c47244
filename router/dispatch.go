package router

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/vcrobe/valkyrja/dom"
	"github.com/vcrobe/valkyrja/tmpl"
)

// Dispatch resolves hash and runs the navigation: tear down the previous
// controller, build the next, bind its template, invoke the action with the
// route parameters and render.
//
// The hash is "<path>[&key=value...]". A first segment containing '=' is
// read as parameters for "/". Unmatched paths, unknown controllers or
// actions, a missing template or a missing main container render the 404
// error template and return an error wrapping ErrNotFound.
func (r *Router) Dispatch(hash string) error {
	url := strings.TrimPrefix(hash, "#")
	if url == "" {
		url = "/"
	}
	parts := strings.Split(url, "&")
	if strings.Contains(parts[0], "=") {
		parts = append([]string{"/"}, parts...)
	}
	path := parts[0]

	r.mu.RLock()
	route, ok := r.routes[path]
	def, defOK := r.controllers[route.ControllerName]
	r.mu.RUnlock()

	if !ok {
		return r.notFound(hash, "no route for "+path)
	}
	action := def.actions[route.ActionName]
	if !defOK || action == nil {
		return r.notFound(hash, fmt.Sprintf("no action %s@%s", route.ControllerName, route.ActionName))
	}
	if r.doc.GetElementByID(r.mainID) == nil {
		return r.notFound(hash, ErrNoContainer.Error())
	}
	renderer, err := r.templates.Lookup(route.TemplateID, r.templateSource)
	if err != nil {
		return r.notFound(hash, err.Error())
	}

	args := parseArgs(route.Params, parts[1:])

	r.mu.Lock()
	prev := r.prev
	r.mu.Unlock()
	if rm, ok := prev.(Remover); ok {
		rm.Remove()
	}

	ctrl := def.factory()
	ctrl.Mount(r.doc, ctrl, r.logger.With(slog.String("controller", route.ControllerName)))
	ctrl.SetTemplate(renderer)
	action(ctrl, args)
	renderErr := ctrl.Render(nil)

	r.mu.Lock()
	r.prev = ctrl
	r.mu.Unlock()

	if h := r.hooks.OnNavigate; h != nil {
		h(path)
	}
	r.logger.Debug("navigated", slog.String("path", path), slog.String("action", route.ActionName))
	if renderErr != nil {
		return fmt.Errorf("router: render %s: %w", path, renderErr)
	}
	return nil
}

// parseArgs keeps the key=value segments whose key is declared and orders
// them by the declaration. Undeclared keys are dropped; declared keys absent
// from the hash, or present without '=', stay nil.
func parseArgs(declared []string, segments []string) Args {
	if declared == nil {
		return nil
	}
	values := make(map[string]*string, len(declared))
	for _, seg := range segments {
		key, value, hasValue := strings.Cut(seg, "=")
		if !slices.Contains(declared, key) {
			continue
		}
		if !hasValue {
			values[key] = nil
			continue
		}
		values[key] = &value
	}
	args := make(Args, len(declared))
	for i, name := range declared {
		args[i] = values[name]
	}
	return args
}

func (r *Router) notFound(hash, reason string) error {
	r.logger.Error("navigation failed", slog.String("hash", hash), slog.String("reason", reason))
	if h := r.hooks.OnNotFound; h != nil {
		h(hash)
	}
	if err := r.Error(404); err != nil {
		return fmt.Errorf("%w: %s (%v)", ErrNotFound, reason, err)
	}
	return fmt.Errorf("%w: %s", ErrNotFound, reason)
}

// Error renders the error template with {type: code} into the main content
// container.
func (r *Router) Error(code int) error {
	main := dom.New(r.doc, "#"+r.mainID)
	if main.IsEmpty() {
		r.logger.Error("cannot render error", slog.Int("type", code), slog.String("reason", ErrNoContainer.Error()))
		return ErrNoContainer
	}
	renderer, err := r.templates.Lookup(r.errorTemplateID, r.templateSource)
	if err != nil {
		r.logger.Error("cannot render error", slog.Int("type", code), slog.Any("error", err))
		return err
	}
	out, err := renderer.Render(tmpl.Map{"type": code})
	if err != nil {
		r.logger.Error("error template failed", slog.Int("type", code), slog.Any("error", err))
		return fmt.Errorf("router: render error template: %w", err)
	}
	main.SetHTML(out)
	return nil
}

// templateSource reads the markup of the element with the given id.
func (r *Router) templateSource(id string) (string, bool) {
	set := dom.New(r.doc, "#"+id)
	if set.IsEmpty() {
		return "", false
	}
	return set.HTML().String(), true
}
