package visual

import (
	"slices"
	"time"
)

const (
	// DefaultCacheCapacity is the number of rendered visuals kept per selector.
	DefaultCacheCapacity = 20

	// DefaultCacheTTL is how long a cached visual stays valid.
	DefaultCacheTTL = 30 * time.Minute
)

type cacheEntry struct {
	payload  any
	cachedAt time.Time
}

// visualCache holds rendered visuals keyed by an opaque caller key.
// Eviction is by insertion order, not by access.
type visualCache struct {
	capacity int
	ttl      time.Duration
	entries  map[string]cacheEntry
	order    []string // oldest first
}

func newVisualCache(capacity int, ttl time.Duration) *visualCache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &visualCache{
		capacity: capacity,
		ttl:      ttl,
		entries:  make(map[string]cacheEntry, capacity),
	}
}

// put stores payload under key. Re-putting a key replaces it and makes it
// the newest entry.
func (c *visualCache) put(key string, payload any, now time.Time) {
	if _, ok := c.entries[key]; ok {
		c.remove(key)
	}
	for len(c.order) >= c.capacity {
		c.remove(c.order[0])
	}
	c.entries[key] = cacheEntry{payload: payload, cachedAt: now}
	c.order = append(c.order, key)
}

// get returns the payload for key if it is younger than the TTL.
// A stale entry is dropped.
func (c *visualCache) get(key string, now time.Time) (any, bool) {
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if now.Sub(e.cachedAt) < c.ttl {
		return e.payload, true
	}
	c.remove(key)
	return nil, false
}

func (c *visualCache) remove(key string) {
	delete(c.entries, key)
	if i := slices.Index(c.order, key); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
}

func (c *visualCache) clear() {
	clear(c.entries)
	c.order = c.order[:0]
}

func (c *visualCache) len() int {
	return len(c.entries)
}
