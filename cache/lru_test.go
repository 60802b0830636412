package cache_test

import (
	"testing"
	"time"

	"github.com/hupe1980/simplehnsw/cache"
	"github.com/stretchr/testify/assert"
)

func TestPutGet(t *testing.T) {
	c := cache.New[string, int](2, 0)

	c.Put("a", 1)
	c.Put("b", 2)

	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := cache.New[string, int](2, 0)

	c.Put("a", 1)
	c.Put("b", 2)
	c.Get("a") // touch a, making b the LRU entry
	c.Put("c", 3)

	assert.True(t, c.Contains("a"))
	assert.False(t, c.Contains("b"))
	assert.True(t, c.Contains("c"))
	assert.Equal(t, 2, c.Size())
}

func TestMaxSizeClampedToOne(t *testing.T) {
	c := cache.New[string, int](0, 0)
	c.Put("a", 1)
	c.Put("b", 2)

	assert.Equal(t, 1, c.Size())
	assert.False(t, c.Contains("a"))
	assert.True(t, c.Contains("b"))
}

func TestMaxAgeEviction(t *testing.T) {
	c := cache.New[string, int](10, 10*time.Millisecond)
	c.Put("a", 1)

	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Size())
}

func TestClear(t *testing.T) {
	c := cache.New[string, int](10, 0)
	c.Put("a", 1)
	c.Put("b", 2)

	c.Clear()

	assert.Equal(t, 0, c.Size())
	assert.False(t, c.Contains("a"))
}

func TestPutUpdatesExistingKey(t *testing.T) {
	c := cache.New[string, int](10, 0)
	c.Put("a", 1)
	c.Put("a", 2)

	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, c.Size())
}
