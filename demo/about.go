package demo

import (
	"context"
	"fmt"
	"html"
	"io"
	"log/slog"

	"github.com/a-h/templ"

	"github.com/vcrobe/valkyrja/app"
	"github.com/vcrobe/valkyrja/router"
	"github.com/vcrobe/valkyrja/tmpl"
	"github.com/vcrobe/valkyrja/view"
)

// About shows the version and the detected platform.
type About struct {
	view.Template

	app *app.App
}

func (a *About) Index(router.Args) {}

func (a *About) Initialize() {
	platform := "desktop"
	if a.app.UserAgent.Mobile {
		platform = "mobile"
	}
	out, err := a.RenderTemplate(tmpl.Map{"version": a.app.Config.Version, "platform": platform})
	if err != nil {
		a.Logger().Error("render about", slog.Any("error", err))
		return
	}
	main := a.app.Elems.Main.SetHTML(out)
	a.SetElement(main.Find(".about"), false)
}

func aboutPage(data any) templ.Component {
	m, _ := data.(tmpl.Map)
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<section class="about"><h1>About</h1><p class="version">valkyrja %s</p><p class="platform">%s</p></section>`,
			html.EscapeString(fmt.Sprint(m["version"])), html.EscapeString(fmt.Sprint(m["platform"])))
		return err
	})
}
