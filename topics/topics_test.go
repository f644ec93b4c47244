package topics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	hits []string
}

func TestTopic_RegisteredOnceByName(t *testing.T) {
	bus := NewBus(nil)

	a := bus.Topic("saved")
	b := bus.Topic("saved")
	anon := bus.Topic("")

	assert.Same(t, a, b)
	assert.True(t, bus.Has("saved"))
	assert.NotSame(t, anon, bus.Topic(""))
	assert.ElementsMatch(t, []string{"saved"}, bus.Names())
}

func TestSubscribe_DuplicatePairStoredOnce(t *testing.T) {
	bus := NewBus(nil)
	scope := &counter{}
	cb := NewCallback("hit", func(s any, args ...any) {
		s.(*counter).hits = append(s.(*counter).hits, "hit")
	})

	require.NoError(t, bus.Topic("x").Subscribe(cb, scope))
	err := bus.Topic("x").Subscribe(cb, scope)

	assert.ErrorIs(t, err, ErrAlreadySubscribed)
	assert.Equal(t, 1, bus.Topic("x").Len())

	require.NoError(t, bus.Topic("x").Trigger())
	assert.Equal(t, []string{"hit"}, scope.hits)
}

func TestSubscribe_SameCallbackDifferentScopes(t *testing.T) {
	bus := NewBus(nil)
	cb := NewCallback("hit", func(any, ...any) {})

	require.NoError(t, bus.Topic("x").Subscribe(cb, &counter{}))
	require.NoError(t, bus.Topic("x").Subscribe(cb, &counter{}))
	require.NoError(t, bus.Topic("x").Subscribe(cb, nil))

	assert.Equal(t, 3, bus.Topic("x").Len())
}

func TestSubscribe_RejectsBadInput(t *testing.T) {
	bus := NewBus(nil)

	assert.ErrorIs(t, bus.Topic("x").Subscribe(nil, nil), ErrNilCallback)
	assert.ErrorIs(t, bus.Topic("x").Subscribe(NewCallback("f", func(any, ...any) {}), []int{1}), ErrScopeNotComparable)
	assert.Equal(t, 0, bus.Topic("x").Len())
}

func TestSubscribe_ScopeWithUncomparableField(t *testing.T) {
	bus := NewBus(nil)
	cb := NewCallback("f", func(any, ...any) {})
	type holder struct{ Data any }

	assert.ErrorIs(t, bus.Topic("x").Subscribe(cb, holder{Data: []int{1}}), ErrScopeNotComparable)
	assert.ErrorIs(t, bus.Topic("x").Subscribe(cb, holder{Data: []int{1}}), ErrScopeNotComparable)
	assert.Equal(t, 0, bus.Topic("x").Len())

	require.NoError(t, bus.Topic("x").Subscribe(cb, holder{Data: 1}))
	assert.ErrorIs(t, bus.Topic("x").Subscribe(cb, holder{Data: 1}), ErrAlreadySubscribed)
	bus.Topic("x").Unsubscribe(cb, holder{Data: []int{1}})
	assert.Equal(t, 1, bus.Topic("x").Len())
}

func TestTrigger_OrderAndArguments(t *testing.T) {
	bus := NewBus(nil)
	var order []string
	record := func(label string) *Callback {
		return NewCallback(label, func(scope any, args ...any) {
			order = append(order, label+":"+args[0].(string))
		})
	}
	topic := bus.Topic("saved")
	require.NoError(t, topic.Subscribe(record("first"), nil))
	require.NoError(t, topic.Subscribe(record("second"), nil))
	require.NoError(t, topic.Subscribe(record("third"), nil))

	require.NoError(t, topic.Trigger("doc-1"))

	assert.Equal(t, []string{"first:doc-1", "second:doc-1", "third:doc-1"}, order)
}

func TestTrigger_DefaultScopeIsBus(t *testing.T) {
	bus := NewBus(nil)
	var got any
	require.NoError(t, bus.Topic("x").Subscribe(NewCallback("f", func(scope any, _ ...any) { got = scope }), nil))

	require.NoError(t, bus.Topic("x").Trigger())

	assert.Same(t, bus, got)
}

func TestTrigger_PanickingSubscriberDoesNotHaltDispatch(t *testing.T) {
	var panics []string
	bus := NewBus(nil, WithHooks(Hooks{OnPanic: func(topic string) { panics = append(panics, topic) }}))
	ran := false
	topic := bus.Topic("x")
	require.NoError(t, topic.Subscribe(NewCallback("boom", func(any, ...any) { panic("boom") }), nil))
	require.NoError(t, topic.Subscribe(NewCallback("after", func(any, ...any) { ran = true }), nil))

	err := topic.Trigger()

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSubscriberPanic))
	assert.Contains(t, err.Error(), "boom")
	assert.True(t, ran)
	assert.Equal(t, []string{"x"}, panics)
}

func TestUnsubscribe(t *testing.T) {
	bus := NewBus(nil)
	scope := &counter{}
	cb := NewCallback("f", func(any, ...any) {})
	other := NewCallback("g", func(any, ...any) {})
	topic := bus.Topic("x")
	require.NoError(t, topic.Subscribe(cb, scope))
	require.NoError(t, topic.Subscribe(other, scope))

	topic.Unsubscribe(cb, &counter{}).Unsubscribe(nil, nil)
	assert.Equal(t, 2, topic.Len())

	topic.Unsubscribe(cb, scope)
	assert.Equal(t, 1, topic.Len())

	topic.UnsubscribeAll()
	assert.Equal(t, 0, topic.Len())
	assert.True(t, bus.Has("x"))
}

func TestRemoveTopics(t *testing.T) {
	bus := NewBus(nil)
	held := bus.Topic("x")

	bus.RemoveTopics()

	assert.False(t, bus.Has("x"))
	assert.NotSame(t, held, bus.Topic("x"))
}

func TestHandleTopics(t *testing.T) {
	triggers := map[string]int{}
	bus := NewBus(nil, WithHooks(Hooks{OnTrigger: func(topic string, n int) { triggers[topic] = n }}))
	cb := NewCallback("f", func(any, ...any) {})
	scope := &counter{}
	subs := map[string][]Subscription{
		"a": {{Callback: cb, Scope: scope}, {Callback: cb}},
		"b": {{Callback: cb, Scope: scope}},
	}

	bus.HandleTopics(subs, false)
	bus.HandleTopics(subs, false)
	require.NoError(t, bus.Topic("a").Trigger())
	require.NoError(t, bus.Topic("b").Trigger())

	assert.Equal(t, map[string]int{"a": 2, "b": 1}, triggers)

	bus.HandleTopics(subs, true)
	assert.Equal(t, 0, bus.Topic("a").Len())
	assert.Equal(t, 0, bus.Topic("b").Len())
}
