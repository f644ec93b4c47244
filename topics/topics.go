// Package topics is a named publish/subscribe registry.
//
// A Bus maps topic names to Topics; a Topic keeps an ordered list of
// (callback, scope) subscriptions and invokes them in subscription order on
// Trigger. A Bus is an explicit value owned by the application, not a
// package-wide registry.
package topics

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
)

var (
	ErrNilCallback        = errors.New("topics: callback is nil")
	ErrAlreadySubscribed  = errors.New("topics: callback already subscribed with this scope")
	ErrScopeNotComparable = errors.New("topics: scope is not comparable")
	ErrSubscriberPanic    = errors.New("topics: subscriber panicked")
)

// HandlerFunc receives the subscription scope and the trigger arguments.
type HandlerFunc func(scope any, args ...any)

// Callback is a comparable handle around a HandlerFunc. Subscriptions are
// identified by the *Callback pointer and the scope.
type Callback struct {
	name string
	fn   HandlerFunc
}

// NewCallback wraps fn. name is only used in log output.
func NewCallback(name string, fn HandlerFunc) *Callback {
	return &Callback{name: name, fn: fn}
}

// Name returns the callback's log name.
func (c *Callback) Name() string {
	return c.name
}

type subscription struct {
	callback *Callback
	scope    any
}

// Bus owns the registered topics.
type Bus struct {
	mu     sync.Mutex
	topics map[string]*Topic
	logger *slog.Logger
	hooks  Hooks
}

// Hooks lets instrumentation observe dispatch. All fields are optional.
type Hooks struct {
	OnTrigger func(topic string, subscribers int)
	OnPanic   func(topic string)
}

// Option configures a Bus.
type Option func(*Bus)

// WithHooks installs instrumentation hooks.
func WithHooks(h Hooks) Option {
	return func(b *Bus) {
		b.hooks = h
	}
}

// NewBus returns an empty Bus.
func NewBus(logger *slog.Logger, opts ...Option) *Bus {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	b := &Bus{
		topics: make(map[string]*Topic),
		logger: logger,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Topic returns the topic registered under name, registering it first if
// needed. An empty name returns a fresh, unregistered topic that only lives
// as long as the caller holds it.
func (b *Bus) Topic(name string) *Topic {
	if name == "" {
		return b.newTopic("")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	t, ok := b.topics[name]
	if !ok {
		t = b.newTopic(name)
		b.topics[name] = t
	}
	return t
}

func (b *Bus) newTopic(name string) *Topic {
	return &Topic{name: name, bus: b}
}

// Has reports whether a topic is registered under name.
func (b *Bus) Has(name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.topics[name]
	return ok
}

// Names returns the registered topic names in no particular order.
func (b *Bus) Names() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	names := make([]string, 0, len(b.topics))
	for name := range b.topics {
		names = append(names, name)
	}
	return names
}

// RemoveTopics forgets every registered topic. Topics already handed out
// keep working but are no longer reachable by name.
func (b *Bus) RemoveTopics() *Bus {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.topics = make(map[string]*Topic)
	return b
}

// Subscription pairs a callback with a scope for HandleTopics. A nil Scope
// means the Bus itself.
type Subscription struct {
	Callback *Callback
	Scope    any
}

// HandleTopics subscribes, or with remove unsubscribes, every entry of the
// map in one call. Failed entries are logged and skipped.
func (b *Bus) HandleTopics(topics map[string][]Subscription, remove bool) *Bus {
	if len(topics) == 0 {
		b.logger.Error("no topics provided")
		return b
	}
	for name, subs := range topics {
		t := b.Topic(name)
		for _, s := range subs {
			if remove {
				t.Unsubscribe(s.Callback, s.Scope)
				continue
			}
			if err := t.Subscribe(s.Callback, s.Scope); err != nil && !errors.Is(err, ErrAlreadySubscribed) {
				b.logger.Error("subscribe failed", slog.String("topic", name), slog.Any("error", err))
			}
		}
	}
	return b
}

// Topic is an ordered list of subscriptions.
type Topic struct {
	name string
	bus  *Bus

	mu            sync.Mutex
	subscriptions []subscription
}

// Name returns the topic name; empty for anonymous topics.
func (t *Topic) Name() string {
	return t.name
}

// Len returns the number of subscriptions.
func (t *Topic) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.subscriptions)
}

// Subscribe appends (callback, scope) unless that exact pair is already
// subscribed. A nil scope means the Bus.
func (t *Topic) Subscribe(callback *Callback, scope any) error {
	if callback == nil || callback.fn == nil {
		t.bus.logger.Error("scope or callback incorrect", slog.String("topic", t.name))
		return ErrNilCallback
	}
	scope = t.scopeOrBus(scope)
	if !isComparable(scope) {
		t.bus.logger.Error("scope or callback incorrect", slog.String("topic", t.name))
		return fmt.Errorf("%w: %T", ErrScopeNotComparable, scope)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.indexOf(callback, scope) >= 0 {
		return ErrAlreadySubscribed
	}
	t.subscriptions = append(t.subscriptions, subscription{callback: callback, scope: scope})
	return nil
}

// Unsubscribe removes the first subscription matching (callback, scope). It
// is a no-op when there is none.
func (t *Topic) Unsubscribe(callback *Callback, scope any) *Topic {
	if callback == nil {
		return t
	}
	scope = t.scopeOrBus(scope)
	if !isComparable(scope) {
		return t
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if i := t.indexOf(callback, scope); i >= 0 {
		t.subscriptions = append(t.subscriptions[:i:i], t.subscriptions[i+1:]...)
	}
	return t
}

// UnsubscribeAll clears the subscriptions; the topic stays registered.
func (t *Topic) UnsubscribeAll() *Topic {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.subscriptions = nil
	return t
}

// Trigger invokes every subscriber in subscription order with args.
//
// A panicking subscriber does not stop the dispatch: the panic is recovered,
// logged and returned, joined with any others, once every subscriber ran.
func (t *Topic) Trigger(args ...any) error {
	t.mu.Lock()
	snapshot := make([]subscription, len(t.subscriptions))
	copy(snapshot, t.subscriptions)
	t.mu.Unlock()

	if h := t.bus.hooks.OnTrigger; h != nil {
		h(t.name, len(snapshot))
	}

	var errs []error
	for _, s := range snapshot {
		if err := t.call(s, args); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (t *Topic) call(s subscription, args []any) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %s on %q: %v", ErrSubscriberPanic, s.callback.name, t.name, rec)
			t.bus.logger.Error("subscriber panicked",
				slog.String("topic", t.name),
				slog.String("callback", s.callback.name),
				slog.Any("panic", rec))
			if h := t.bus.hooks.OnPanic; h != nil {
				h(t.name)
			}
		}
	}()
	s.callback.fn(s.scope, args...)
	return nil
}

func (t *Topic) indexOf(callback *Callback, scope any) int {
	for i, s := range t.subscriptions {
		if s.callback == callback && s.scope == scope {
			return i
		}
	}
	return -1
}

func (t *Topic) scopeOrBus(scope any) any {
	if scope == nil {
		return t.bus
	}
	return scope
}

// isComparable checks the dynamic value, so a struct scope holding a slice
// in an interface field is rejected rather than panicking on ==.
func isComparable(v any) bool {
	return reflect.ValueOf(v).Comparable()
}
