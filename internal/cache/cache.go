// Package cache implements the bounded slab index cache of spec.md §3/§4.2:
// slab key -> (storage context, physical slab path, tile offsets, tile
// sizes, insertion timestamp), evicted by capacity and by absolute TTL
// rather than LRU recency.
package cache

import (
	"sync"
	"time"

	"github.com/rok4/pyramid-core/internal/storage"
)

// DefaultCapacity and DefaultTTL match spec.md §3 "Slab and tile index".
const (
	DefaultCapacity = 100
	DefaultTTL      = 300 * time.Second
)

// Entry is one cached slab's tile index.
type Entry struct {
	Context   storage.Context
	SlabName  string
	Offsets   []uint32
	Sizes     []uint32
	CreatedAt time.Time
}

func (e *Entry) expired(ttl time.Duration, now time.Time) bool {
	return now.Sub(e.CreatedAt) > ttl
}

// TileLocation is what Get resolves a (key, tileIndex) pair to.
type TileLocation struct {
	Context  storage.Context
	SlabName string
	Offset   uint32
	Size     uint32
}

// Cache is the bounded, single-mutex slab index cache (spec.md §4.2).
// Unlike a classic LRU, a hit does not re-promote its entry: entries
// expire on an absolute TTL so that a long-running hot key is still
// refreshed often enough to notice a rewritten slab.
type Cache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	order    []string // insertion order, oldest first, for capacity eviction
	entries  map[string]*Entry
}

// New creates a Cache with the given capacity and TTL. A capacity or TTL
// of zero falls back to the spec.md defaults.
func New(capacity int, ttl time.Duration) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		capacity: capacity,
		ttl:      ttl,
		entries:  make(map[string]*Entry),
	}
}

// Get resolves (key, tileIndex) to a TileLocation. ok is false on a miss
// or on an expired entry, which is also removed as a side effect the way
// spec.md §4.2 describes ("when a read notices expiry it takes the
// mutex, rechecks, and erases").
func (c *Cache) Get(key string, tileIndex int) (TileLocation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, found := c.entries[key]
	if !found {
		return TileLocation{}, false
	}
	if e.expired(c.ttl, time.Now()) {
		c.removeLocked(key)
		return TileLocation{}, false
	}
	if tileIndex < 0 || tileIndex >= len(e.Offsets) || tileIndex >= len(e.Sizes) {
		return TileLocation{}, false
	}
	return TileLocation{
		Context:  e.Context,
		SlabName: e.SlabName,
		Offset:   e.Offsets[tileIndex],
		Size:     e.Sizes[tileIndex],
	}, true
}

// Add inserts or replaces the entry for key, evicting the oldest entry
// by insertion order if the cache is at capacity.
func (c *Cache) Add(key string, ctx storage.Context, slabName string, offsets, sizes []uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		if len(c.order) >= c.capacity {
			c.evictOldestLocked()
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = &Entry{
		Context:   ctx,
		SlabName:  slabName,
		Offsets:   offsets,
		Sizes:     sizes,
		CreatedAt: time.Now(),
	}
}

func (c *Cache) evictOldestLocked() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.entries, oldest)
}

func (c *Cache) removeLocked(key string) {
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Len reports the number of live entries, for tests and diagnostics.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

var (
	indexOnce sync.Once
	index     *Cache
)

// Index returns the process-wide slab index cache singleton (spec.md §3
// Lifecycles).
func Index() *Cache {
	indexOnce.Do(func() {
		index = New(DefaultCapacity, DefaultTTL)
	})
	return index
}
