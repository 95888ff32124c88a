package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryCurrencyCache implements CurrencyCache with a process-local map.
// Suitable for single-instance deployments and testing; entries do not
// survive restarts and are not shared across instances.
type InMemoryCurrencyCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]inMemoryCurrencyEntry
	ttl     time.Duration
	now     func() time.Time
}

type inMemoryCurrencyEntry struct {
	currency  string
	expiresAt time.Time
}

// NewInMemoryCurrencyCache creates a new in-memory currency cache
func NewInMemoryCurrencyCache(ttl time.Duration) *InMemoryCurrencyCache {
	if ttl <= 0 {
		ttl = defaultCurrencyTTL
	}
	return &InMemoryCurrencyCache{
		entries: make(map[uuid.UUID]inMemoryCurrencyEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get retrieves a store currency from cache
func (c *InMemoryCurrencyCache) Get(_ context.Context, storeID uuid.UUID) (string, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[storeID]
	c.mu.RUnlock()

	if !ok {
		return "", false, nil
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, storeID)
		c.mu.Unlock()
		return "", false, nil
	}
	return entry.currency, true, nil
}

// Set stores a store currency in cache
func (c *InMemoryCurrencyCache) Set(_ context.Context, storeID uuid.UUID, currency string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[storeID] = inMemoryCurrencyEntry{
		currency:  currency,
		expiresAt: c.now().Add(c.ttl),
	}
	return nil
}

// Invalidate removes a store currency from cache
func (c *InMemoryCurrencyCache) Invalidate(_ context.Context, storeID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, storeID)
	return nil
}

var _ CurrencyCache = (*InMemoryCurrencyCache)(nil)
