package demo_test

import (
	"context"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/valkyrja/app"
	"github.com/vcrobe/valkyrja/config"
	"github.com/vcrobe/valkyrja/demo"
	"github.com/vcrobe/valkyrja/devserver"
	"github.com/vcrobe/valkyrja/dom"
	"github.com/vcrobe/valkyrja/dom/htmldom"
	"github.com/vcrobe/valkyrja/topics"
)

func startDemo(t *testing.T, baseURL string) (*app.App, *htmldom.Document) {
	t.Helper()
	cfg, err := config.Parse(demo.ConfigYAML)
	require.NoError(t, err)
	cfg.BaseURL = baseURL

	doc := htmldom.MustParse(demo.IndexHTML)
	a, err := app.New(cfg, app.Memory(doc, "#/"),
		app.WithTemplates(demo.Templates()),
		app.WithLogger(slog.New(slog.DiscardHandler)),
	)
	require.NoError(t, err)
	require.NoError(t, demo.Register(a))
	require.NoError(t, a.Start())
	t.Cleanup(a.Close)
	return a, doc
}

func mainText(doc dom.Document) string {
	return strings.Join(strings.Fields(dom.New(doc, "#main").Text().String()), " ")
}

func click(doc *htmldom.Document, selector string) {
	doc.Fire(dom.New(doc, selector).Get(0), "click")
}

func TestHome_CountsVisits(t *testing.T) {
	a, doc := startDemo(t, "")
	assert.Contains(t, mainText(doc), "Visits: 1")
	assert.Contains(t, mainText(doc), "Valkyrja 2.0.0-alpha")

	a.Navigate("/notes")
	a.Navigate("/")

	assert.Contains(t, mainText(doc), "Visits: 2")
	assert.Equal(t, 2.0, testutil.ToFloat64(a.Metrics.Navigations.WithLabelValues("/")))
}

func TestHome_GreetStoresCookieAndPublishes(t *testing.T) {
	a, doc := startDemo(t, "")
	var greeted []any
	require.NoError(t, a.Bus.Topic(demo.TopicGreeted).Subscribe(
		topics.NewCallback("test", func(_ any, args ...any) { greeted = append(greeted, args...) }), nil))

	dom.New(doc, ".name").SetVal("Ada")
	click(doc, ".greet")

	assert.Contains(t, mainText(doc), "Hello, Ada")
	name, ok := a.Cookies.Get("name")
	assert.True(t, ok)
	assert.Equal(t, "Ada", name)
	assert.Equal(t, []any{"Ada"}, greeted)

	a.Navigate("/about")
	a.Navigate("/")
	assert.Contains(t, mainText(doc), "Welcome back, Ada")
}

func TestHome_GreetWithoutName(t *testing.T) {
	a, doc := startDemo(t, "")

	click(doc, ".greet")

	assert.False(t, a.Cookies.Has("name"))
	assert.Contains(t, mainText(doc), "Who are you?")
}

func TestNotes_AddFilterAndClear(t *testing.T) {
	a, doc := startDemo(t, "")
	var changes int
	require.NoError(t, a.Bus.Topic(demo.TopicNotesChanged).Subscribe(
		topics.NewCallback("count", func(any, ...any) { changes++ }), nil))

	a.Navigate("/notes")
	assert.Contains(t, mainText(doc), "Notes (0)")

	for _, note := range []string{"buy milk", "walk dog", ""} {
		dom.New(doc, ".note-text").SetVal(note)
		click(doc, ".add")
	}

	assert.Equal(t, 2, changes)
	assert.Equal(t, 2, dom.New(doc, ".note").Len())
	assert.Contains(t, mainText(doc), "Notes (2)")
	var stored []string
	found, err := a.Cache.Get("notes", &stored)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"buy milk", "walk dog"}, stored)

	a.Navigate("/notes&filter=milk")
	assert.Contains(t, mainText(doc), "Notes (1)")
	assert.Contains(t, mainText(doc), "Filtered by milk")
	assert.Equal(t, "buy milk", dom.New(doc, ".note").Text().String())

	click(doc, ".clear")
	assert.Equal(t, 1, dom.New(doc, ".note").Len(), "clear needs confirmation")
}

func TestNotes_Sync(t *testing.T) {
	srv, err := devserver.New(slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	a, doc := startDemo(t, ts.URL)
	a.Navigate("/notes")
	dom.New(doc, ".note-text").SetVal("ship it")
	click(doc, ".add")

	notes, ok := a.Router.Current().(*demo.Notes)
	require.True(t, ok)
	resp := <-notes.Sync(context.Background())

	require.NoError(t, resp.Err)
	assert.Contains(t, resp.Body, `ship it`)
	assert.Equal(t, "synced", dom.New(doc, ".status").Text().String())
}

func TestAbout_PrecompiledTemplate(t *testing.T) {
	a, doc := startDemo(t, "")

	a.Navigate("/about")

	assert.Equal(t, "valkyrja 2.0.0-alpha", dom.New(doc, ".version").Text().String())
	assert.Equal(t, "desktop", dom.New(doc, ".platform").Text().String())
}

func TestUnknownRoute(t *testing.T) {
	a, doc := startDemo(t, "")

	a.Navigate("/missing")

	assert.Contains(t, mainText(doc), "Error 404")
	assert.Equal(t, 1.0, testutil.ToFloat64(a.Metrics.NotFound))
}
