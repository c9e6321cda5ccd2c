// Package cache provides the per-region, time-boxed article cache.
package cache

import (
	"sync"
	"time"

	"github.com/TobiSchelling/worldnews/internal/feed"
)

// DefaultTTL is how long a region's merged article list stays fresh.
const DefaultTTL = 2 * time.Minute

// Entry is one cached region result. Entries are replaced on refresh, never
// mutated in place.
type Entry struct {
	Region    string
	Articles  []feed.Article
	FetchedAt time.Time
}

// Cache memoizes merged article lists per region for a fixed TTL.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]Entry
}

// New creates a cache with the given TTL. A non-positive TTL falls back to
// DefaultTTL.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]Entry),
	}
}

// Get returns the cached articles for a region if the entry is still within
// its TTL.
func (c *Cache) Get(region string) ([]feed.Article, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[region]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.FetchedAt) >= c.ttl {
		return nil, false
	}
	return entry.Articles, true
}

// Put replaces any prior entry for the region.
func (c *Cache) Put(region string, articles []feed.Article) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[region] = Entry{
		Region:    region,
		Articles:  articles,
		FetchedAt: c.now(),
	}
}

// Invalidate drops the region's entry unconditionally.
func (c *Cache) Invalidate(region string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, region)
}
