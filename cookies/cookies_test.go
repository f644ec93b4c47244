package cookies

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder keeps every write and serves a fixed read string.
type recorder struct {
	cookie string
	writes []string
}

func (r *recorder) Cookie() string        { return r.cookie }
func (r *recorder) SetCookie(line string) { r.writes = append(r.writes, line) }

func TestSet_MaxAgeThenGet(t *testing.T) {
	c := New(NewJar(), nil)

	require.NoError(t, c.Set("k", "v", MaxAge(3600)))

	v, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestSet_ReservedKeyWritesNothing(t *testing.T) {
	rec := &recorder{}
	c := New(rec, nil)

	for _, key := range []string{"expires", "Max-Age", "PATH", "domain", "secure"} {
		assert.ErrorIs(t, c.Set(key, "x"), ErrReservedKey, key)
	}
	assert.ErrorIs(t, c.Set("", "x"), ErrEmptyKey)
	assert.Empty(t, rec.writes)
}

func TestSet_AttributeString(t *testing.T) {
	rec := &recorder{}
	c := New(rec, nil)
	at := time.Date(2030, time.March, 4, 5, 6, 7, 0, time.FixedZone("X", 3600))

	require.NoError(t, c.Set("a b", "c;d", Permanent(), Domain("example.com"), Path("/"), Secure()))
	require.NoError(t, c.Set("k", "v", ExpiresAt(at)))
	require.NoError(t, c.Set("k", "v", Expires("Wed, 01 Jan 2031 00:00:00 GMT")))
	require.NoError(t, c.Set("k", "v", MaxAge(60)))

	assert.Equal(t, []string{
		"a%20b=c%3Bd; expires=Fri, 31 Dec 9999 23:59:59 GMT; domain=example.com; path=/; secure",
		"k=v; expires=Mon, 04 Mar 2030 04:06:07 GMT",
		"k=v; expires=Wed, 01 Jan 2031 00:00:00 GMT",
		"k=v; max-age=60",
	}, rec.writes)
}

func TestGet_DecodesAndTrims(t *testing.T) {
	c := New(&recorder{cookie: "a%20b=c%3Bd;  theme = dark ; empty="}, nil)

	v, ok := c.Get("a b")
	assert.True(t, ok)
	assert.Equal(t, "c;d", v)

	v, _ = c.Get("theme")
	assert.Equal(t, "dark", v)

	_, ok = c.Get("empty")
	assert.False(t, ok)
	assert.True(t, c.Has("empty"))

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestKeysAndGetAll(t *testing.T) {
	c := New(&recorder{cookie: "a=1; b=2; c%21=3"}, nil)

	assert.Equal(t, []string{"a", "b", "c!"}, c.Keys())
	assert.Equal(t, map[string]string{"a": "1", "b": "2", "c!": "3"}, c.GetAll())

	empty := New(&recorder{}, nil)
	assert.Empty(t, empty.Keys())
	assert.Empty(t, empty.GetAll())
}

func TestRemove(t *testing.T) {
	jar := NewJar()
	c := New(jar, nil)
	require.NoError(t, c.Set("session", "abc"))
	require.NoError(t, c.Set("other", "x"))

	assert.True(t, c.Remove("session", Path("/")))
	assert.False(t, c.Has("session"))
	assert.Equal(t, "other=x", jar.Cookie())

	assert.False(t, c.Remove("session"))
	assert.False(t, c.Remove(""))
}

func TestRemove_WritesEpochExpiry(t *testing.T) {
	rec := &recorder{cookie: "k=v"}
	c := New(rec, nil)

	require.True(t, c.Remove("k", Domain("example.com"), Path("/app")))

	assert.Equal(t, []string{"k=; expires=Thu, 01 Jan 1970 00:00:00 GMT; domain=example.com; path=/app"}, rec.writes)
}

func TestJar_Expiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	jar := NewJar()
	jar.now = func() time.Time { return now }
	c := New(jar, nil)

	require.NoError(t, c.Set("short", "1", MaxAge(10)))
	require.NoError(t, c.Set("long", "2", Permanent()))
	require.NoError(t, c.Set("gone", "3", MaxAge(0)))
	assert.Equal(t, "short=1; long=2", jar.Cookie())

	now = now.Add(11 * time.Second)
	assert.Equal(t, "long=2", jar.Cookie())

	require.NoError(t, c.Set("long", "4"))
	assert.Equal(t, "long=4", jar.Cookie())
}

func TestEncodeURIComponent(t *testing.T) {
	assert.Equal(t, "A-z_0.!~*'()", encodeURIComponent("A-z_0.!~*'()"))
	assert.Equal(t, "%E2%82%AC%20%2B%3D", encodeURIComponent("€ +="))
	assert.Equal(t, "%zz", decodeURIComponent("%zz"))
}
