// Package cache persists values in the browser's local storage, or any other
// string key-value Storage. Values are encoded with a Codec, JSON unless
// configured otherwise.
package cache

import (
	"fmt"
	"log/slog"
)

// Storage is the string store behind a Cache. It mirrors the Web Storage
// API.
type Storage interface {
	GetItem(key string) (string, bool)
	SetItem(key, value string) error
	RemoveItem(key string)
	Clear()
	Length() int
}

// Cache encodes values into a Storage.
type Cache struct {
	storage Storage
	codec   Codec
	logger  *slog.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithCodec replaces the JSON codec.
func WithCodec(c Codec) Option {
	return func(cache *Cache) {
		cache.codec = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(cache *Cache) {
		cache.logger = l
	}
}

// New returns a Cache over storage.
func New(storage Storage, opts ...Option) *Cache {
	c := &Cache{storage: storage, codec: JSON{}}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// Get decodes the value stored under key into v. It reports false, and
// leaves v untouched, when the key is absent.
func (c *Cache) Get(key string, v any) (bool, error) {
	raw, ok := c.storage.GetItem(key)
	if !ok {
		return false, nil
	}
	if err := c.codec.Unmarshal(raw, v); err != nil {
		c.logger.Warn("cache decode", slog.String("key", key), slog.Any("error", err))
		return true, fmt.Errorf("cache: decode %q: %w", key, err)
	}
	return true, nil
}

// Set encodes v and stores it under key.
func (c *Cache) Set(key string, v any) error {
	raw, err := c.codec.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache: encode %q: %w", key, err)
	}
	if err := c.storage.SetItem(key, raw); err != nil {
		c.logger.Warn("cache store", slog.String("key", key), slog.Any("error", err))
		return fmt.Errorf("cache: store %q: %w", key, err)
	}
	return nil
}

// Del removes key.
func (c *Cache) Del(key string) {
	c.storage.RemoveItem(key)
}

// Clear removes every key.
func (c *Cache) Clear() {
	c.storage.Clear()
}

// Len returns the number of stored keys.
func (c *Cache) Len() int {
	return c.storage.Length()
}
