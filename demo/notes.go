package demo

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/vcrobe/valkyrja/ajax"
	"github.com/vcrobe/valkyrja/app"
	"github.com/vcrobe/valkyrja/dialogs"
	"github.com/vcrobe/valkyrja/dom"
	"github.com/vcrobe/valkyrja/router"
	"github.com/vcrobe/valkyrja/tmpl"
	"github.com/vcrobe/valkyrja/view"
)

// Notes lists, adds and syncs notes kept in the cache.
type Notes struct {
	view.Template

	app    *app.App
	filter string
	notes  []string
}

func (n *Notes) Show(args router.Args) {
	n.filter = args.String(0)
	if _, err := n.app.Cache.Get(notesKey, &n.notes); err != nil {
		n.Logger().Warn("notes unreadable", slog.Any("error", err))
		n.notes = nil
	}
}

// Visible returns the notes matching the filter.
func (n *Notes) Visible() []string {
	if n.filter == "" {
		return n.notes
	}
	var out []string
	for _, note := range n.notes {
		if strings.Contains(note, n.filter) {
			out = append(out, note)
		}
	}
	return out
}

func (n *Notes) Initialize() {
	visible := n.Visible()
	out, err := n.RenderTemplate(tmpl.Map{
		"notes":  visible,
		"count":  len(visible),
		"filter": n.filter,
	})
	if err != nil {
		n.Logger().Error("render notes", slog.Any("error", err))
		return
	}
	main := n.app.Elems.Main.SetHTML(out)
	n.SetElement(main.Find(".notes"), false)
}

func (n *Notes) Events() view.EventMap {
	return view.EventMap{
		"click .add":   n.add,
		"click .clear": n.clear,
		"click .sync":  func(*dom.Event) { n.Sync(context.Background()) },
	}
}

func (n *Notes) add(*dom.Event) {
	text := strings.TrimSpace(n.Find(".note-text").Val().String())
	if text == "" {
		return
	}
	n.notes = append(n.notes, text)
	n.save()
}

func (n *Notes) clear(*dom.Event) {
	if !dialogs.Confirm("Delete every note?") {
		return
	}
	n.notes = nil
	n.app.Cache.Del(notesKey)
	n.changed()
}

func (n *Notes) save() {
	if err := n.app.Cache.Set(notesKey, n.notes); err != nil {
		n.Logger().Warn("notes not saved", slog.Any("error", err))
	}
	n.changed()
}

func (n *Notes) changed() {
	if err := n.app.Bus.Topic(TopicNotesChanged).Trigger(len(n.notes)); err != nil {
		n.Logger().Warn("notes subscribers failed", slog.Any("error", err))
	}
	if err := n.Render(nil); err != nil {
		n.Logger().Warn("redraw notes", slog.Any("error", err))
	}
}

// Sync posts the notes as JSON to SyncPath and reports the outcome in the
// status line. A response arriving after the page was left is ignored.
func (n *Notes) Sync(ctx context.Context) <-chan ajax.Response {
	payload, err := json.Marshal(n.notes)
	if err != nil {
		payload = []byte("[]")
	}
	status := func(text string) {
		if n.State() == view.StateRemoved {
			return
		}
		n.Find(".status").SetText(text)
	}
	return n.app.HTTP.Post(ctx, SyncPath, ajax.Options{
		DataString:  string(payload),
		ContentType: "application/json",
		Success:     func(string) { status("synced") },
		Error:       func(string) { status("sync failed") },
	})
}
