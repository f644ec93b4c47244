package router

import (
	"log/slog"
	"sync"
)

// Location is the browser location the router listens to.
type Location interface {
	Hash() string
	SetHash(hash string)
	// Watch calls fn once the page has loaded and after every hash change.
	// The returned func unbinds.
	Watch(fn func()) (stop func())
}

// Start binds the router to loc. The initial load and every later hash
// change go through Dispatch. loc is bound before the first dispatch, so an
// action may Navigate while the initial route is handled.
func (r *Router) Start(loc Location) {
	r.Stop()
	r.mu.Lock()
	r.location = loc
	r.binding++
	binding := r.binding
	r.mu.Unlock()

	stop := loc.Watch(func() {
		hash := loc.Hash()
		if err := r.Dispatch(hash); err != nil {
			r.logger.Warn("dispatch", slog.String("hash", hash), slog.Any("error", err))
		}
	})

	r.mu.Lock()
	if r.binding != binding {
		// Stopped or restarted during the initial dispatch.
		r.mu.Unlock()
		stop()
		return
	}
	r.stop = stop
	r.mu.Unlock()
}

// Stop unbinds the router from its location. The active controller is left
// rendered.
func (r *Router) Stop() {
	r.mu.Lock()
	stop := r.stop
	r.stop = nil
	r.location = nil
	r.binding++
	r.mu.Unlock()
	if stop != nil {
		stop()
	}
}

// Navigate changes the location hash, which triggers a dispatch. It is a
// no-op before Start.
func (r *Router) Navigate(hash string) {
	r.mu.RLock()
	loc := r.location
	r.mu.RUnlock()
	if loc == nil {
		r.logger.Warn("navigate before start", slog.String("hash", hash))
		return
	}
	loc.SetHash(hash)
}

// MemoryLocation is a Location held in memory. It backs native builds and
// tests: Watch fires immediately, as the load event would, and SetHash
// fires every watcher when the hash changes. A hash set while watchers are
// running is delivered once they return, the way a browser queues
// hashchange, so watchers never nest.
type MemoryLocation struct {
	mu       sync.Mutex
	hash     string
	watchers map[int]func()
	next     int
	firing   bool
	pending  bool
}

// NewMemoryLocation returns a MemoryLocation at hash.
func NewMemoryLocation(hash string) *MemoryLocation {
	return &MemoryLocation{hash: hash, watchers: make(map[int]func())}
}

func (l *MemoryLocation) Hash() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.hash
}

func (l *MemoryLocation) SetHash(hash string) {
	if hash != "" && hash[0] != '#' {
		hash = "#" + hash
	}
	l.mu.Lock()
	if hash == l.hash {
		l.mu.Unlock()
		return
	}
	l.hash = hash
	if l.firing {
		l.pending = true
		l.mu.Unlock()
		return
	}
	l.firing = true
	fns := l.snapshot()
	l.mu.Unlock()
	l.deliver(fns)
}

func (l *MemoryLocation) Watch(fn func()) func() {
	l.mu.Lock()
	id := l.next
	l.next++
	l.watchers[id] = fn
	nested := l.firing
	l.firing = true
	l.mu.Unlock()

	if nested {
		fn()
	} else {
		l.deliver([]func(){fn})
	}
	return func() {
		l.mu.Lock()
		delete(l.watchers, id)
		l.mu.Unlock()
	}
}

// deliver runs fns, then every watcher again for each hash change made
// meanwhile. The caller has set firing.
func (l *MemoryLocation) deliver(fns []func()) {
	for {
		for _, fn := range fns {
			fn()
		}
		l.mu.Lock()
		if !l.pending {
			l.firing = false
			l.mu.Unlock()
			return
		}
		l.pending = false
		fns = l.snapshot()
		l.mu.Unlock()
	}
}

// snapshot returns the watchers in registration order. l.mu must be held.
func (l *MemoryLocation) snapshot() []func() {
	fns := make([]func(), 0, len(l.watchers))
	for i := 0; i < l.next; i++ {
		if fn, ok := l.watchers[i]; ok {
			fns = append(fns, fn)
		}
	}
	return fns
}
