package tmpl

import "github.com/aymerick/raymond"

// Handlebars compiles Handlebars/Mustache source with raymond.
func Handlebars() Compiler {
	return CompilerFunc(func(source string) (Renderer, error) {
		tpl, err := raymond.Parse(source)
		if err != nil {
			return nil, err
		}
		return RendererFunc(func(data any) (string, error) {
			return tpl.Exec(data)
		}), nil
	})
}

// Map is the data shape most templates are rendered with.
type Map map[string]any
