package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/valkyrja/dom"
	"github.com/vcrobe/valkyrja/dom/htmldom"
	"github.com/vcrobe/valkyrja/tmpl"
)

const page = `<html><body><div id="main"><section id="panel">
<button class="save">Save</button><button class="cancel">Cancel</button>
</section></div></body></html>`

// panel is a controller-like view embedding Template.
type panel struct {
	Template

	initialized int
	removed     int
	saves       int
	clicks      int
	pings       int
}

func (p *panel) Initialize() {
	p.initialized++
	if p.Elem().Len() == 1 && p.Elem().Get(0).NodeName() == "#document" {
		p.SetElement(dom.New(p.Document(), "#panel"), false)
	}
}

func (p *panel) OnRemove() { p.removed++ }

func (p *panel) Events() EventMap {
	return EventMap{
		"click .save": func(*dom.Event) { p.saves++ },
		"click":       func(*dom.Event) { p.clicks++ },
		"ping":        func(*dom.Event) { p.pings++ },
	}
}

func mountPanel(t *testing.T) (*panel, *htmldom.Document) {
	t.Helper()
	doc := htmldom.MustParse(page)
	p := &panel{}
	p.Mount(doc, p, nil)
	return p, doc
}

func TestRender_Lifecycle(t *testing.T) {
	p, doc := mountPanel(t)
	assert.Equal(t, StateConstructed, p.State())
	assert.NotEmpty(t, p.SID())

	require.NoError(t, p.Render(nil))

	assert.Equal(t, StateRendered, p.State())
	assert.Equal(t, 1, p.initialized)
	assert.Equal(t, "panel", p.Elem().Get(0).ID())
	assert.Equal(t, 3, p.Bound())

	doc.Fire(dom.New(doc, ".save").Get(0), "click")
	doc.Fire(dom.New(doc, ".cancel").Get(0), "click")

	assert.Equal(t, 1, p.saves)
	assert.Equal(t, 2, p.clicks)
}

func TestRender_TwiceDoesNotDuplicateBindings(t *testing.T) {
	p, doc := mountPanel(t)

	require.NoError(t, p.Render(nil))
	require.NoError(t, p.Render(nil))
	doc.Fire(dom.New(doc, ".save").Get(0), "click")

	assert.Equal(t, 2, p.initialized)
	assert.Equal(t, 3, p.Bound())
	assert.Equal(t, 1, p.saves)
}

func TestRender_AppliesOnlyAcceptedOptions(t *testing.T) {
	p, _ := mountPanel(t)

	require.NoError(t, p.Render(Options{
		"Model":      map[string]int{"n": 1},
		"className":  "panel",
		"tagName":    "section",
		"sID":        "fixed",
		"attributes": map[string]string{"role": "dialog"},
		"template":   "ignored",
		"initialize": func() {},
		"tagNameX":   "nope",
	}))

	assert.Equal(t, map[string]int{"n": 1}, p.Model)
	assert.Equal(t, "panel", p.ClassName())
	assert.Equal(t, "section", p.TagName())
	assert.Equal(t, "fixed", p.SID())
	assert.Equal(t, "dialog", p.Attributes()["role"])
}

func TestRender_WrongOptionTypeIsIgnored(t *testing.T) {
	p, _ := mountPanel(t)
	before := p.SID()

	require.NoError(t, p.Render(Options{"sID": 42, "tagName": true}))

	assert.Equal(t, before, p.SID())
	assert.Equal(t, "div", p.TagName())
}

func TestRender_ElemOptionAndEventsOption(t *testing.T) {
	doc := htmldom.MustParse(page)
	tpl := New(doc, nil)
	hits := 0

	require.NoError(t, tpl.Render(Options{
		"elem":   "#panel",
		"events": EventMap{"click .cancel": func(*dom.Event) { hits++ }},
	}))
	doc.Fire(dom.New(doc, ".cancel").Get(0), "click")

	assert.Equal(t, 1, hits)
	assert.Equal(t, "panel", tpl.Elem().Get(0).ID())
}

func TestRender_DefaultsToDocument(t *testing.T) {
	doc := htmldom.MustParse(page)
	tpl := New(doc, nil)

	require.NoError(t, tpl.Render(nil))

	assert.Equal(t, "#document", tpl.Elem().Get(0).NodeName())
}

func TestSetElement_MovesBindings(t *testing.T) {
	p, doc := mountPanel(t)
	require.NoError(t, p.Render(nil))
	main := dom.New(doc, "#main")

	p.SetElement(main, true)

	assert.Equal(t, 0, doc.ListenerCount(dom.New(doc, "#panel").Get(0), "click"))
	assert.Equal(t, 2, doc.ListenerCount(main.Get(0), "click"))

	p.SetElement(dom.New(doc, "#panel"), false)
	assert.Equal(t, 0, doc.ListenerCount(main.Get(0), "click"))
	assert.Equal(t, 0, p.Bound())
}

func TestRemove_IsTerminal(t *testing.T) {
	p, doc := mountPanel(t)
	require.NoError(t, p.Render(nil))
	panelNode := p.Elem().Get(0)

	p.Remove()
	p.Remove()

	assert.Equal(t, StateRemoved, p.State())
	assert.Equal(t, 1, p.removed)
	assert.Equal(t, 0, p.Bound())
	assert.Equal(t, 0, doc.ListenerCount(panelNode, "click"))
	assert.True(t, dom.New(doc, "#panel").IsEmpty())
	assert.ErrorIs(t, p.Render(nil), ErrRemoved)
}

func TestTriggerEvent(t *testing.T) {
	p, doc := mountPanel(t)
	require.NoError(t, p.Render(nil))
	var targets []string
	dom.New(doc, ".save").On("ping", "", dom.Listen(func(e *dom.Event) {
		targets = append(targets, e.Target.ClassName())
	}))

	p.TriggerEvent("ping .save")
	p.TriggerEvent("ping")

	assert.Equal(t, []string{"save"}, targets)
	assert.Equal(t, 1, p.pings)
}

func TestRenderTemplate(t *testing.T) {
	p, _ := mountPanel(t)
	_, err := p.RenderTemplate(nil)
	assert.ErrorIs(t, err, ErrNoTemplate)

	r, err := tmpl.Handlebars().Compile("<p>{{name}}</p>")
	require.NoError(t, err)
	p.SetTemplate(r)
	out, err := p.RenderTemplate(tmpl.Map{"name": "x"})

	require.NoError(t, err)
	assert.Equal(t, "<p>x</p>", out)
}

type panicky struct {
	Template
}

func (p *panicky) Initialize() { panic("broken view") }

func TestRender_RecoversInitializePanic(t *testing.T) {
	doc := htmldom.MustParse(page)
	p := &panicky{}
	p.Mount(doc, p, nil)

	assert.NotPanics(t, func() { require.NoError(t, p.Render(nil)) })
	assert.Equal(t, StateRendered, p.State())
}

func TestRender_NotMounted(t *testing.T) {
	var tpl Template

	assert.ErrorIs(t, tpl.Render(nil), ErrNotMounted)
}
