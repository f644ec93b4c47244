// Package cookies reads and writes cookies through a document.cookie style
// Source: reads see "name=value; name2=value2", each write assigns one
// "name=value; attr=..." string.
package cookies

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

var (
	ErrEmptyKey    = errors.New("cookies: empty key")
	ErrReservedKey = errors.New("cookies: reserved attribute name used as key")
)

// Forever is the expiry written for cookies that never expire.
const Forever = "Fri, 31 Dec 9999 23:59:59 GMT"

const epoch = "Thu, 01 Jan 1970 00:00:00 GMT"

var reserved = []string{"expires", "max-age", "path", "domain", "secure"}

// Source is the cookie string of a document.
type Source interface {
	Cookie() string
	SetCookie(cookie string)
}

// Cookies manages the cookies of a Source.
type Cookies struct {
	src    Source
	logger *slog.Logger
}

// New returns Cookies over src. A nil logger discards.
func New(src Source, logger *slog.Logger) *Cookies {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Cookies{src: src, logger: logger}
}

type attrs struct {
	expiry string
	path   string
	domain string
	secure bool
}

// Option sets a cookie attribute.
type Option func(*attrs)

// MaxAge expires the cookie after the given number of seconds.
func MaxAge(seconds int) Option {
	return func(a *attrs) {
		a.expiry = "; max-age=" + strconv.Itoa(seconds)
	}
}

// ExpiresAt expires the cookie at t.
func ExpiresAt(t time.Time) Option {
	return func(a *attrs) {
		a.expiry = "; expires=" + t.UTC().Format(http.TimeFormat)
	}
}

// Expires expires the cookie at a preformatted date.
func Expires(date string) Option {
	return func(a *attrs) {
		if date != "" {
			a.expiry = "; expires=" + date
		}
	}
}

// Permanent expires the cookie at the far-future Forever date.
func Permanent() Option {
	return Expires(Forever)
}

// Path scopes the cookie to a path.
func Path(p string) Option {
	return func(a *attrs) {
		a.path = p
	}
}

// Domain scopes the cookie to a domain.
func Domain(d string) Option {
	return func(a *attrs) {
		a.domain = d
	}
}

// Secure restricts the cookie to secure transports.
func Secure() Option {
	return func(a *attrs) {
		a.secure = true
	}
}

// Get returns the decoded value of key. It reports false when the cookie is
// absent or empty.
func (c *Cookies) Get(key string) (string, bool) {
	for _, p := range c.pairs() {
		if p.name == key {
			return p.value, p.value != ""
		}
	}
	return "", false
}

// Set writes key. Empty keys and keys naming a cookie attribute are
// rejected and nothing is written.
func (c *Cookies) Set(key, value string, opts ...Option) error {
	if key == "" {
		c.logger.Error("cookie key missing")
		return ErrEmptyKey
	}
	for _, r := range reserved {
		if strings.EqualFold(key, r) {
			c.logger.Error("reserved cookie key", slog.String("key", key))
			return fmt.Errorf("%w: %s", ErrReservedKey, key)
		}
	}
	var a attrs
	for _, opt := range opts {
		opt(&a)
	}
	var b strings.Builder
	b.WriteString(encodeURIComponent(key))
	b.WriteByte('=')
	b.WriteString(encodeURIComponent(value))
	b.WriteString(a.expiry)
	if a.domain != "" {
		b.WriteString("; domain=" + a.domain)
	}
	if a.path != "" {
		b.WriteString("; path=" + a.path)
	}
	if a.secure {
		b.WriteString("; secure")
	}
	c.src.SetCookie(b.String())
	return nil
}

// Remove expires key. Only Path and Domain options apply. It reports
// false when the cookie does not exist.
func (c *Cookies) Remove(key string, opts ...Option) bool {
	if key == "" || !c.Has(key) {
		return false
	}
	var a attrs
	for _, opt := range opts {
		opt(&a)
	}
	cookie := encodeURIComponent(key) + "=; expires=" + epoch
	if a.domain != "" {
		cookie += "; domain=" + a.domain
	}
	if a.path != "" {
		cookie += "; path=" + a.path
	}
	c.src.SetCookie(cookie)
	return true
}

// Has reports whether key is set, even to an empty value.
func (c *Cookies) Has(key string) bool {
	for _, p := range c.pairs() {
		if p.name == key {
			return true
		}
	}
	return false
}

// Keys returns the decoded cookie names in document order.
func (c *Cookies) Keys() []string {
	pairs := c.pairs()
	keys := make([]string, 0, len(pairs))
	for _, p := range pairs {
		keys = append(keys, p.name)
	}
	return keys
}

// GetAll returns every cookie, decoded.
func (c *Cookies) GetAll() map[string]string {
	pairs := c.pairs()
	all := make(map[string]string, len(pairs))
	for _, p := range pairs {
		all[p.name] = p.value
	}
	return all
}

type pair struct {
	name, value string
}

func (c *Cookies) pairs() []pair {
	var out []pair
	for _, part := range strings.Split(c.src.Cookie(), ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, _ := strings.Cut(part, "=")
		out = append(out, pair{
			name:  decodeURIComponent(strings.TrimSpace(name)),
			value: decodeURIComponent(strings.TrimSpace(value)),
		})
	}
	return out
}

// encodeURIComponent escapes everything but A-Z a-z 0-9 and -_.!~*'().
func encodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9' ||
			strings.IndexByte("-_.!~*'()", ch) >= 0 {
			b.WriteByte(ch)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[ch>>4])
		b.WriteByte(hex[ch&15])
	}
	return b.String()
}

func decodeURIComponent(s string) string {
	out, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return out
}
