package dom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/valkyrja/dom"
)

func TestOn_DirectBinding(t *testing.T) {
	doc := newDoc(t)
	list := dom.New(doc, "#list")
	var got []string
	l := dom.Listen(func(e *dom.Event) { got = append(got, e.Type) })

	list.On("click", "", l)
	doc.Fire(dom.New(doc, "a").Get(0), "click")
	list.Off("click", "", l)
	doc.Fire(dom.New(doc, "a").Get(0), "click")

	assert.Equal(t, []string{"click"}, got)
}

func TestOn_DelegatedBinding(t *testing.T) {
	doc := newDoc(t)
	list := dom.New(doc, "#list")
	var matched []string
	l := dom.Listen(func(e *dom.Event) {
		id, _ := e.SelectorTarget.Attribute("data-id")
		matched = append(matched, id)
	})

	list.On("click", ".item", l)

	doc.Fire(dom.New(doc, "a").Get(1), "click")
	doc.Fire(dom.New(doc, "span").Get(0), "click")
	doc.Fire(list.Get(0), "click")

	assert.Equal(t, []string{"2"}, matched)
	assert.Equal(t, 1, doc.ListenerCount(list.Get(0), "click"))

	list.Off("click", ".item", l)
	doc.Fire(dom.New(doc, "a").Get(0), "click")

	assert.Equal(t, []string{"2"}, matched)
	assert.Equal(t, 0, doc.ListenerCount(list.Get(0), "click"))
}

func TestOn_DelegationRecomputedPerEvent(t *testing.T) {
	doc := newDoc(t)
	list := dom.New(doc, "#list")
	count := 0
	list.On("click", ".hot", dom.Listen(func(*dom.Event) { count++ }))

	span := dom.New(doc, "span").Get(0)
	doc.Fire(span, "click")
	dom.Wrap(doc, span).AddClass("hot")
	doc.Fire(span, "click")

	assert.Equal(t, 1, count)
}

func TestTrigger_DoesNotBubble(t *testing.T) {
	doc := newDoc(t)
	var hits []string
	dom.New(doc, "#list").On("ping", "", dom.Listen(func(*dom.Event) { hits = append(hits, "list") }))
	dom.New(doc, "li").On("ping", "", dom.Listen(func(e *dom.Event) {
		hits = append(hits, e.Target.NodeName())
	}))

	dom.New(doc, ".first").Trigger("ping")

	assert.Equal(t, []string{"LI"}, hits)
}

func TestOffAll_ClonesAndStripsListeners(t *testing.T) {
	doc := newDoc(t)
	list := dom.New(doc, "#list")
	count := 0
	list.On("click", "", dom.Listen(func(*dom.Event) { count++ }))
	item := dom.New(doc, "#list li").Get(0)
	dom.Wrap(doc, item).On("click", "", dom.Listen(func(*dom.Event) { count++ }))
	original := list.Get(0)
	require.Equal(t, 2, doc.BoundNodes())

	list.Off("", "", nil)
	doc.Fire(dom.New(doc, "a").Get(0), "click")

	require.Equal(t, 1, dom.New(doc, "#list").Len())
	assert.False(t, original.IsSameNode(dom.New(doc, "#list").Get(0)))
	assert.True(t, list.Get(0).IsSameNode(dom.New(doc, "#list").Get(0)))
	assert.Equal(t, 0, count)
	assert.Equal(t, 3, dom.New(doc, "#list li").Len())
	assert.Equal(t, 0, doc.ListenerCount(original, "click"))
	assert.Equal(t, 0, doc.ListenerCount(item, "click"))
	assert.Equal(t, 0, doc.BoundNodes())
}

func TestElems(t *testing.T) {
	doc := newDoc(t)

	elems := dom.NewElems(doc, "")

	assert.Equal(t, "main", elems.Main.Get(0).ID())
	assert.Equal(t, "BODY", elems.Body.Get(0).NodeName())
	assert.Equal(t, 1, elems.Footer.Len())
	assert.Equal(t, "#document", elems.Document.Get(0).NodeName())
}
