package internal

// DefaultMaxCacheSize bounds the subtree cache to this many distinct keys
// unless a different size is configured.
const DefaultMaxCacheSize = 10

type cacheEntry struct {
	state  any
	locked bool
}

// SubtreeCache preserves a node's rendered state across re-renders, keyed
// by the node's stable key. It keeps access order for LRU eviction, but a
// locked entry is never evicted regardless of its position: the gesture
// coordinator and in-flight transitions lock both sides of an animation so
// they stay resolvable for its full duration. When every entry is locked
// the cache temporarily exceeds its bound instead of evicting.
type SubtreeCache struct {
	entries map[string]*cacheEntry
	order   []string // least recently used first
	maxSize int
}

func NewSubtreeCache() *SubtreeCache {
	return NewSubtreeCacheWithSize(DefaultMaxCacheSize)
}

func NewSubtreeCacheWithSize(maxSize int) *SubtreeCache {
	if maxSize < 1 {
		maxSize = DefaultMaxCacheSize
	}
	return &SubtreeCache{
		entries: make(map[string]*cacheEntry),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
	}
}

// GetOrCreate returns the preserved state for key, building and inserting
// it on first use. Only one entry exists per key at a time; an access
// moves the key to the most-recently-used end.
func (c *SubtreeCache) GetOrCreate(key string, build func() any) any {
	if entry, exists := c.entries[key]; exists {
		c.moveToEnd(key)
		return entry.state
	}

	if len(c.order) >= c.maxSize {
		c.evictOldestUnlocked()
	}

	entry := &cacheEntry{state: build()}
	c.entries[key] = entry
	c.order = append(c.order, key)
	return entry.state
}

// Peek returns the state for key without touching access order.
func (c *SubtreeCache) Peek(key string) (any, bool) {
	entry, exists := c.entries[key]
	if !exists {
		return nil, false
	}
	return entry.state, true
}

// Contains reports whether key currently has an entry.
func (c *SubtreeCache) Contains(key string) bool {
	_, exists := c.entries[key]
	return exists
}

// Lock pins the entry for key so it cannot be evicted. Locking a missing
// key is a no-op; callers lock right after GetOrCreate.
func (c *SubtreeCache) Lock(key string) {
	if entry, exists := c.entries[key]; exists {
		entry.locked = true
	}
}

// Unlock releases the eviction pin for key.
func (c *SubtreeCache) Unlock(key string) {
	if entry, exists := c.entries[key]; exists {
		entry.locked = false
	}
}

// Locked reports whether the entry for key is pinned.
func (c *SubtreeCache) Locked(key string) bool {
	entry, exists := c.entries[key]
	return exists && entry.locked
}

// LockedKeys returns the keys of all pinned entries, in access order.
func (c *SubtreeCache) LockedKeys() []string {
	var keys []string
	for _, key := range c.order {
		if c.entries[key].locked {
			keys = append(keys, key)
		}
	}
	return keys
}

// Drop removes the entry for key regardless of lock state. Used when a
// node's identity is gone for good (e.g. host teardown), never during
// normal eviction.
func (c *SubtreeCache) Drop(key string) {
	if _, exists := c.entries[key]; !exists {
		return
	}
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

func (c *SubtreeCache) Len() int {
	return len(c.order)
}

func (c *SubtreeCache) moveToEnd(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, key)
			return
		}
	}
}

func (c *SubtreeCache) evictOldestUnlocked() {
	for i, key := range c.order {
		if c.entries[key].locked {
			continue
		}
		c.order = append(c.order[:i], c.order[i+1:]...)
		delete(c.entries, key)
		return
	}
	// All entries locked: no eviction, cache may temporarily exceed maxSize.
}

// Clear removes everything, locks included.
func (c *SubtreeCache) Clear() {
	c.entries = make(map[string]*cacheEntry)
	c.order = c.order[:0]
}
