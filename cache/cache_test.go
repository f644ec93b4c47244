package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profile struct {
	Name  string   `json:"name" msgpack:"name"`
	Score int      `json:"score" msgpack:"score"`
	Tags  []string `json:"tags" msgpack:"tags"`
}

func TestCache_JSONRoundTrip(t *testing.T) {
	storage := NewMemoryStorage()
	c := New(storage)

	require.NoError(t, c.Set("user", profile{Name: "ada", Score: 3, Tags: []string{"x"}}))

	raw, ok := storage.GetItem("user")
	require.True(t, ok)
	assert.JSONEq(t, `{"name":"ada","score":3,"tags":["x"]}`, raw)

	var got profile
	found, err := c.Get("user", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "ada", got.Name)
	assert.Equal(t, 1, c.Len())
}

func TestCache_MissingKey(t *testing.T) {
	c := New(NewMemoryStorage())

	got := profile{Name: "keep"}
	found, err := c.Get("nope", &got)

	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "keep", got.Name)
}

func TestCache_DecodeError(t *testing.T) {
	storage := NewMemoryStorage()
	require.NoError(t, storage.SetItem("bad", "{not json"))
	c := New(storage)

	var got profile
	found, err := c.Get("bad", &got)

	assert.True(t, found)
	assert.Error(t, err)
}

func TestCache_EncodeError(t *testing.T) {
	c := New(NewMemoryStorage())

	assert.Error(t, c.Set("fn", func() {}))
	assert.Zero(t, c.Len())
}

func TestCache_DelAndClear(t *testing.T) {
	c := New(NewMemoryStorage())
	require.NoError(t, c.Set("a", 1))
	require.NoError(t, c.Set("b", 2))

	c.Del("a")
	assert.Equal(t, 1, c.Len())
	found, err := c.Get("a", new(int))
	require.NoError(t, err)
	assert.False(t, found)

	c.Clear()
	assert.Zero(t, c.Len())
}

func TestCache_Msgpack(t *testing.T) {
	storage := NewMemoryStorage()
	c := New(storage, WithCodec(Msgpack{}))

	require.NoError(t, c.Set("user", profile{Name: "grace", Score: 9}))

	raw, _ := storage.GetItem("user")
	assert.NotContains(t, raw, "{")

	var got profile
	found, err := c.Get("user", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, profile{Name: "grace", Score: 9}, got)
}
