package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	fragment  []byte
	expiresAt time.Time
}

// MemoryCache is an in-process FragmentCache. It backs the cache when
// Redis is not configured and is the implementation tests run against.
// A single mutex gives the per-key single-writer discipline the home
// feed needs; concurrent misses may double-render, last writer wins.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry

	// now is swappable so tests can step through the TTL window.
	now func() time.Time
}

// NewMemoryCache creates an empty in-process fragment cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get returns the stored fragment if its TTL has not elapsed.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.fragment, true
}

// Put stores the fragment until ttl elapses.
func (c *MemoryCache) Put(_ context.Context, key string, fragment []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = memoryEntry{
		fragment:  fragment,
		expiresAt: c.now().Add(ttl),
	}
}

// Clear drops every stored fragment.
func (c *MemoryCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]memoryEntry)
	return nil
}

// SetClock replaces the cache's time source. Test hook.
func (c *MemoryCache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
