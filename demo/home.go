package demo

import (
	"html"
	"log/slog"
	"strings"

	"github.com/vcrobe/valkyrja/app"
	"github.com/vcrobe/valkyrja/cookies"
	"github.com/vcrobe/valkyrja/dialogs"
	"github.com/vcrobe/valkyrja/dom"
	"github.com/vcrobe/valkyrja/router"
	"github.com/vcrobe/valkyrja/tmpl"
	"github.com/vcrobe/valkyrja/view"
)

// Home greets the visitor.
type Home struct {
	view.Template

	app    *app.App
	visits int
	name   string
}

func (h *Home) Index(router.Args) {
	if _, err := h.app.Cache.Get(visitsKey, &h.visits); err != nil {
		h.Logger().Warn("visits unreadable", slog.Any("error", err))
	}
	h.visits++
	if err := h.app.Cache.Set(visitsKey, h.visits); err != nil {
		h.Logger().Warn("visits not saved", slog.Any("error", err))
	}
	h.name, _ = h.app.Cookies.Get(nameCookie)
}

func (h *Home) Initialize() {
	out, err := h.RenderTemplate(tmpl.Map{
		"version": h.app.Config.Version,
		"visits":  h.visits,
		"name":    h.name,
	})
	if err != nil {
		h.Logger().Error("render home", slog.Any("error", err))
		return
	}
	main := h.app.Elems.Main.SetHTML(out)
	h.SetElement(main.Find(".home"), false)
}

func (h *Home) Events() view.EventMap {
	return view.EventMap{
		"click .greet": h.greet,
	}
}

func (h *Home) greet(*dom.Event) {
	name := strings.TrimSpace(h.Find(".name").Val().String())
	if name == "" {
		dialogs.Alert("Enter a name first")
		return
	}
	if err := h.app.Cookies.Set(nameCookie, name, cookies.MaxAge(30*24*3600), cookies.Path("/")); err != nil {
		h.Logger().Warn("name not saved", slog.Any("error", err))
	}
	h.name = name
	h.Find(".greeting").SetText("Hello, " + html.EscapeString(name))
	if err := h.app.Bus.Topic(TopicGreeted).Trigger(name); err != nil {
		h.Logger().Warn("greeted subscribers failed", slog.Any("error", err))
	}
}
