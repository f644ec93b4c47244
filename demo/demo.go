// Package demo is a small single-page application built on valkyrja: a
// home page that counts visits and remembers the visitor's name in a
// cookie, a notes page kept in local storage and synced over ajax, and an
// about page rendered by a precompiled templ component.
package demo

import (
	_ "embed"
	"log/slog"

	"github.com/vcrobe/valkyrja/app"
	"github.com/vcrobe/valkyrja/router"
	"github.com/vcrobe/valkyrja/tmpl"
	"github.com/vcrobe/valkyrja/topics"
)

//go:embed index.html
var IndexHTML string

//go:embed valkyrja.yaml
var ConfigYAML []byte

const (
	TopicGreeted      = "greeted"
	TopicNotesChanged = "notes:changed"

	visitsKey  = "visits"
	notesKey   = "notes"
	nameCookie = "name"

	// SyncPath is the endpoint notes are posted to.
	SyncPath = "/api/echo"
)

// Templates returns the template set with the precompiled about page.
func Templates() *tmpl.Set {
	return tmpl.NewSet(nil).Precompiled("about", tmpl.Templ(aboutPage))
}

// Register adds the demo controllers to a's router and subscribes the
// application-level topic listeners.
func Register(a *app.App) error {
	router.Register(a.Router, "Home", func() *Home { return &Home{app: a} },
		map[string]func(*Home, router.Args){"index": (*Home).Index})
	router.Register(a.Router, "Notes", func() *Notes { return &Notes{app: a} },
		map[string]func(*Notes, router.Args){"show": (*Notes).Show})
	router.Register(a.Router, "About", func() *About { return &About{app: a} },
		map[string]func(*About, router.Args){"index": (*About).Index})

	logChange := topics.NewCallback("log-notes", func(scope any, args ...any) {
		scope.(*app.App).Logger.Info("notes changed", slog.Any("count", args))
	})
	return a.Bus.Topic(TopicNotesChanged).Subscribe(logChange, a)
}
