// Package cache provides a bounded, process-wide key/value store with
// least-recently-used eviction. Retrieval uses it to avoid recomputing
// embeddings and reassembling context for repeated requests.
package cache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMaxSize is the capacity used when options omit one.
const DefaultMaxSize = 500

// Options configures a Cache.
//
// TTL is accepted for parity with the deployed configuration but is not
// consulted when serving entries; eviction is strictly capacity-based.
type Options struct {
	MaxSize int
	TTL     time.Duration
}

// Stats reports the current occupancy of a Cache.
type Stats struct {
	Size    int `json:"size"`
	MaxSize int `json:"max_size"`
}

// Cache is a fixed-capacity LRU store. It is safe for concurrent use by
// independent workflow runs; a check-then-set race between callers only
// causes a redundant recomputation, never incorrect data.
type Cache struct {
	lru     *lru.Cache[string, any]
	maxSize int
}

// New creates a Cache with the given options. A zero or negative MaxSize
// falls back to DefaultMaxSize.
func New(opts Options) *Cache {
	size := opts.MaxSize
	if size <= 0 {
		size = DefaultMaxSize
	}
	// lru.New only fails on a non-positive size, which is ruled out above.
	backing, _ := lru.New[string, any](size)
	return &Cache{lru: backing, maxSize: size}
}

// Get returns the value stored under key and whether it was present.
// A hit marks the entry as most recently used.
func (c *Cache) Get(key string) (any, bool) {
	return c.lru.Get(key)
}

// Set stores value under key. When the cache is full, the least-recently-used
// entry is evicted to make room.
func (c *Cache) Set(key string, value any) {
	c.lru.Add(key, value)
}

// Has reports whether key is present without updating its recency.
func (c *Cache) Has(key string) bool {
	return c.lru.Contains(key)
}

// Delete removes key if present.
func (c *Cache) Delete(key string) {
	c.lru.Remove(key)
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.lru.Purge()
}

// Stats returns the current size and configured capacity.
func (c *Cache) Stats() Stats {
	return Stats{Size: c.lru.Len(), MaxSize: c.maxSize}
}
