package cache

import (
	"context"
	"sync"
	"time"

	"github.com/tkarvinen/spotadvisor-go/types"
)

type FetchFunc func(ctx context.Context) (*types.PriceSet, error)

// Stats reports cache effectiveness for the health endpoint.
type Stats struct {
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
	Entries int    `json:"entries"`
}

type entry struct {
	set       *types.PriceSet
	fetchedAt time.Time
}

// PriceCache memoizes the most recent PriceSet per source URL for a fixed
// TTL. Constructed once at process start; there are no implicit singletons.
// The whole check-freshness/fetch-if-stale/store section runs under one
// mutex, so concurrent requests racing on a miss trigger exactly one
// upstream fetch. A failed fetch propagates as-is: stale price data is never
// served in place of fresh, it only misleads once it ages past its horizon.
type PriceCache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]entry
	hits    uint64
	misses  uint64
}

func New(ttl time.Duration) *PriceCache {
	return &PriceCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

func (c *PriceCache) GetOrFetch(ctx context.Context, url string, fetch FetchFunc) (*types.PriceSet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[url]; ok && c.now().Sub(e.fetchedAt) < c.ttl {
		c.hits++
		return e.set, nil
	}

	c.misses++
	set, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	c.entries[url] = entry{set: set, fetchedAt: c.now()}
	return set, nil
}

func (c *PriceCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Hits: c.hits, Misses: c.misses, Entries: len(c.entries)}
}
