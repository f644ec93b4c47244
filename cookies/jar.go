package cookies

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

// Jar is a Source held in memory that applies writes the way a browser
// does: a write replaces the cookie of the same name, and an expiry in the
// past or a non-positive max-age deletes it.
type Jar struct {
	mu      sync.Mutex
	now     func() time.Time
	entries []*http.Cookie
	expires map[string]time.Time
}

// NewJar returns an empty Jar.
func NewJar() *Jar {
	return &Jar{now: time.Now, expires: make(map[string]time.Time)}
}

// Cookie returns the unexpired cookies as "name=value; name2=value2".
func (j *Jar) Cookie() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.expire()
	parts := make([]string, 0, len(j.entries))
	for _, c := range j.entries {
		parts = append(parts, c.Name+"="+c.Value)
	}
	return strings.Join(parts, "; ")
}

// SetCookie applies one Set-Cookie style assignment. Malformed
// assignments are ignored.
func (j *Jar) SetCookie(line string) {
	c, err := http.ParseSetCookie(line)
	if err != nil {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now()
	var expiry time.Time
	switch {
	case c.MaxAge < 0:
		expiry = now
	case c.MaxAge > 0:
		expiry = now.Add(time.Duration(c.MaxAge) * time.Second)
	case !c.Expires.IsZero():
		expiry = c.Expires
	}

	for i, e := range j.entries {
		if e.Name == c.Name {
			j.entries = append(j.entries[:i], j.entries[i+1:]...)
			break
		}
	}
	delete(j.expires, c.Name)
	if !expiry.IsZero() && !expiry.After(now) {
		return
	}
	j.entries = append(j.entries, c)
	if !expiry.IsZero() {
		j.expires[c.Name] = expiry
	}
}

func (j *Jar) expire() {
	now := j.now()
	kept := j.entries[:0]
	for _, c := range j.entries {
		if exp, ok := j.expires[c.Name]; ok && !exp.After(now) {
			delete(j.expires, c.Name)
			continue
		}
		kept = append(kept, c)
	}
	j.entries = kept
}
