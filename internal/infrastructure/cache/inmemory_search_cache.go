package cache

import (
	"context"
	"sync"
	"time"

	"github.com/stockroom/backend/internal/domain/inventory"
)

// InMemorySearchCache implements SearchCache with a mutex-guarded map.
// Suitable for single-instance deployments and tests.
type InMemorySearchCache struct {
	mu      sync.RWMutex
	entries map[string]inMemoryEntry
	ttl     time.Duration
	now     func() time.Time
}

type inMemoryEntry struct {
	rows      []inventory.ItemWithCount
	expiresAt time.Time
}

// NewInMemorySearchCache creates a new in-memory search cache
func NewInMemorySearchCache(ttl time.Duration) *InMemorySearchCache {
	return &InMemorySearchCache{
		entries: make(map[string]inMemoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached rows for a query
func (c *InMemorySearchCache) Get(_ context.Context, query string) ([]inventory.ItemWithCount, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[query]
	c.mu.RUnlock()

	if !ok || c.now().After(entry.expiresAt) {
		return nil, false, nil
	}
	return entry.rows, true, nil
}

// Set stores the rows for a query
func (c *InMemorySearchCache) Set(_ context.Context, query string, rows []inventory.ItemWithCount) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[query] = inMemoryEntry{
		rows:      rows,
		expiresAt: c.now().Add(c.ttl),
	}
	return nil
}

// Invalidate drops all cached queries
func (c *InMemorySearchCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]inMemoryEntry)
	return nil
}

// Close releases cache resources
func (c *InMemorySearchCache) Close() error {
	return nil
}

// Ensure InMemorySearchCache implements SearchCache
var _ SearchCache = (*InMemorySearchCache)(nil)
