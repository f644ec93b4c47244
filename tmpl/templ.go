package tmpl

import (
	"context"
	"strings"

	"github.com/a-h/templ"
)

// Templ adapts a templ component constructor to Renderer, so generated
// components can be registered as precompiled templates.
func Templ(component func(data any) templ.Component) Renderer {
	return RendererFunc(func(data any) (string, error) {
		var b strings.Builder
		if err := component(data).Render(context.Background(), &b); err != nil {
			return "", err
		}
		return b.String(), nil
	})
}
