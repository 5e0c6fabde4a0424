package store

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"ah-flipper/internal/market"
)

// pullEntry holds one cached bazaar pull.
type pullEntry struct {
	pull    market.BazaarPull
	ok      bool
	expires time.Time
}

// CachedStore wraps a DataStore with a short TTL cache on LatestBazaarPull.
// The bazaar snapshot only changes when the ingestion pipeline writes a new
// pull, so concurrent margin scans can share one read. A singleflight.Group
// coalesces concurrent fetches on cache miss. All other reads pass through.
type CachedStore struct {
	market.DataStore

	ttl   time.Duration
	mu    sync.RWMutex
	entry pullEntry
	group singleflight.Group
}

// WithPullCache wraps store with a latest-pull cache of the given TTL.
// A non-positive TTL disables caching.
func WithPullCache(store market.DataStore, ttl time.Duration) *CachedStore {
	return &CachedStore{DataStore: store, ttl: ttl}
}

// LatestBazaarPull implements market.DataStore with caching.
func (c *CachedStore) LatestBazaarPull(ctx context.Context) (market.BazaarPull, bool, error) {
	if c.ttl <= 0 {
		return c.DataStore.LatestBazaarPull(ctx)
	}

	c.mu.RLock()
	e := c.entry
	c.mu.RUnlock()
	if time.Now().Before(e.expires) {
		return e.pull, e.ok, nil
	}

	v, err, _ := c.group.Do("latest_pull", func() (interface{}, error) {
		pull, ok, err := c.DataStore.LatestBazaarPull(ctx)
		if err != nil {
			return nil, err
		}
		entry := pullEntry{pull: pull, ok: ok, expires: time.Now().Add(c.ttl)}
		c.mu.Lock()
		c.entry = entry
		c.mu.Unlock()
		return entry, nil
	})
	if err != nil {
		return market.BazaarPull{}, false, err
	}
	entry := v.(pullEntry)
	return entry.pull, entry.ok, nil
}

// Invalidate drops the cached pull so the next read hits the store.
func (c *CachedStore) Invalidate() {
	c.mu.Lock()
	c.entry = pullEntry{}
	c.mu.Unlock()
}
