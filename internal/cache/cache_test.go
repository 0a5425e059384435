package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheGetSet(t *testing.T) {
	c := New(Options{MaxSize: 10})

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("a", "alpha")
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "alpha", v)

	c.Set("a", "beta")
	v, _ = c.Get("a")
	assert.Equal(t, "beta", v)
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	const maxSize = 5
	c := New(Options{MaxSize: maxSize})

	for i := 0; i < maxSize; i++ {
		c.Set(fmt.Sprintf("key-%d", i), i)
	}

	// Touch everything except key-2 so that key-2 becomes the LRU entry.
	for i := 0; i < maxSize; i++ {
		if i == 2 {
			continue
		}
		_, ok := c.Get(fmt.Sprintf("key-%d", i))
		require.True(t, ok)
	}

	// Inserting max_size+1th distinct key evicts exactly key-2.
	c.Set("overflow", "x")

	assert.False(t, c.Has("key-2"))
	for i := 0; i < maxSize; i++ {
		if i == 2 {
			continue
		}
		assert.True(t, c.Has(fmt.Sprintf("key-%d", i)), "key-%d should survive", i)
	}
	assert.True(t, c.Has("overflow"))
}

func TestCacheHasDoesNotChangeRecency(t *testing.T) {
	c := New(Options{MaxSize: 2})

	c.Set("old", 1)
	c.Set("new", 2)

	// Has must not promote "old"; inserting a third key should still evict it.
	assert.True(t, c.Has("old"))
	c.Set("third", 3)

	assert.False(t, c.Has("old"))
	assert.True(t, c.Has("new"))
	assert.True(t, c.Has("third"))
}

func TestCacheDeleteAndClear(t *testing.T) {
	c := New(Options{MaxSize: 10})

	c.Set("a", 1)
	c.Set("b", 2)

	c.Delete("a")
	assert.False(t, c.Has("a"))
	assert.True(t, c.Has("b"))

	c.Clear()
	assert.False(t, c.Has("b"))
	assert.Equal(t, 0, c.Stats().Size)
}

func TestCacheStats(t *testing.T) {
	c := New(Options{MaxSize: 3})
	assert.Equal(t, Stats{Size: 0, MaxSize: 3}, c.Stats())

	c.Set("a", 1)
	c.Set("b", 2)
	assert.Equal(t, Stats{Size: 2, MaxSize: 3}, c.Stats())

	// Size never exceeds capacity.
	c.Set("c", 3)
	c.Set("d", 4)
	assert.Equal(t, Stats{Size: 3, MaxSize: 3}, c.Stats())
}

func TestCacheDefaultMaxSize(t *testing.T) {
	c := New(Options{})
	assert.Equal(t, DefaultMaxSize, c.Stats().MaxSize)
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := New(Options{MaxSize: 64})

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("key-%d-%d", g, i%16)
				c.Set(key, i)
				c.Get(key)
				c.Has(key)
			}
		}(g)
	}
	wg.Wait()

	stats := c.Stats()
	assert.LessOrEqual(t, stats.Size, stats.MaxSize)
}
