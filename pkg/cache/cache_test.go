package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheSetGet(t *testing.T) {
	c := New()

	c.Set("metrics:abc", 42, time.Hour)

	value, ok := c.Get("metrics:abc")
	assert.True(t, ok)
	assert.Equal(t, 42, value)

	_, ok = c.Get("metrics:missing")
	assert.False(t, ok)
}

func TestCacheExpiry(t *testing.T) {
	c := New()
	current := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	c.Set("key", "value", 24*time.Hour)

	value, ok := c.Get("key")
	assert.True(t, ok)
	assert.Equal(t, "value", value)

	// Advance past the TTL
	current = current.Add(25 * time.Hour)

	_, ok = c.Get("key")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(), "expired entry should be dropped on read")
}

func TestCacheOverwrite(t *testing.T) {
	c := New()

	c.Set("key", "old", time.Hour)
	c.Set("key", "new", time.Hour)

	value, ok := c.Get("key")
	assert.True(t, ok)
	assert.Equal(t, "new", value)
	assert.Equal(t, 1, c.Len())
}

func TestCachePrune(t *testing.T) {
	c := New()
	current := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	c.Set("short", 1, time.Minute)
	c.Set("long", 2, time.Hour)

	current = current.Add(30 * time.Minute)

	dropped := c.Prune()
	assert.Equal(t, 1, dropped)
	assert.Equal(t, 1, c.Len())

	_, ok := c.Get("long")
	assert.True(t, ok)
}

func TestCacheDelete(t *testing.T) {
	c := New()

	c.Set("key", "value", time.Hour)
	c.Delete("key")

	_, ok := c.Get("key")
	assert.False(t, ok)
}
