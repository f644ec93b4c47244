// Package tmpl is the templating collaborator used by views and the router.
// A Compiler turns template source into a Renderer; a Renderer turns data
// into markup.
package tmpl

import (
	"errors"
	"fmt"
	"sync"
)

var ErrTemplateNotFound = errors.New("tmpl: template not found")

// Renderer produces markup from data.
type Renderer interface {
	Render(data any) (string, error)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(data any) (string, error)

func (f RendererFunc) Render(data any) (string, error) {
	return f(data)
}

// Compiler turns template source into a Renderer.
type Compiler interface {
	Compile(source string) (Renderer, error)
}

// CompilerFunc adapts a function to Compiler.
type CompilerFunc func(source string) (Renderer, error)

func (f CompilerFunc) Compile(source string) (Renderer, error) {
	return f(source)
}

// Set resolves template ids to Renderers. Ids registered with Precompiled
// bypass the compiler; every other id is compiled from the source the
// caller reads out of the page, on each lookup.
type Set struct {
	compiler Compiler

	mu          sync.RWMutex
	precompiled map[string]Renderer
}

// NewSet returns a Set compiling page sources with compiler.
func NewSet(compiler Compiler) *Set {
	if compiler == nil {
		compiler = Handlebars()
	}
	return &Set{compiler: compiler, precompiled: make(map[string]Renderer)}
}

// Precompiled registers r under id.
func (s *Set) Precompiled(id string, r Renderer) *Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.precompiled[id] = r
	return s
}

// Lookup returns the Renderer for id. source is only called when id has no
// precompiled Renderer; it reports false when the page has no such template.
func (s *Set) Lookup(id string, source func(id string) (string, bool)) (Renderer, error) {
	s.mu.RLock()
	r, ok := s.precompiled[id]
	s.mu.RUnlock()
	if ok {
		return r, nil
	}
	src, ok := source(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
	}
	r, err := s.compiler.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("tmpl: compile %s: %w", id, err)
	}
	return r, nil
}
