// Package pricecache provides a time-bounded cache of market prices keyed by
// the coin's oracle identifier. The cache performs no network I/O: it is a
// pure freshness-gated mapping, and callers are responsible for fetching from
// the price oracle on a miss and writing the result back.
package pricecache

import (
	"sync"
	"time"
)

// TTL is the freshness window. An entry older than this is stale and must be
// refreshed before being trusted for computation.
const TTL = 60 * time.Second

// Entry is a cached market price for one coin.
type Entry struct {
	CoingeckoID string    `json:"coingeckoId"`
	PriceUSD    float64   `json:"priceUsd"`
	Change24h   float64   `json:"change24h"` // oracle-provided percentage delta
	Change30d   float64   `json:"change30d"` // oracle-provided percentage delta
	FetchedAt   time.Time `json:"fetchedAt"`
}

// Cache maps coingecko_id -> Entry with a freshness gate on reads.
//
// Writes carry a generation token obtained from Begin so that a fetch
// superseded by a newer request (or by a cache reset) has its result
// discarded instead of overwriting fresher state: last request wins.
type Cache struct {
	mu      sync.Mutex
	entries map[string]Entry
	gen     uint64
}

func New() *Cache {
	return &Cache{entries: make(map[string]Entry)}
}

// Get returns the entry for id and whether it can be trusted. ok is false
// when the entry is absent or older than TTL relative to now; the caller must
// then fetch from the oracle and write back.
func (c *Cache) Get(id string, now time.Time) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, found := c.entries[id]
	if !found || now.Sub(e.FetchedAt) > TTL {
		return e, false
	}
	return e, true
}

// Stale filters ids down to those with no fresh entry as of now.
func (c *Cache) Stale(ids []string, now time.Time) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var stale []string
	for _, id := range ids {
		e, found := c.entries[id]
		if !found || now.Sub(e.FetchedAt) > TTL {
			stale = append(stale, id)
		}
	}
	return stale
}

// Begin marks the start of a fetch and returns its generation token.
func (c *Cache) Begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	return c.gen
}

// PutIfCurrent writes entries only when gen is still the latest generation,
// i.e. no newer fetch has begun and no reset has happened since Begin.
// Returns whether the write was applied.
func (c *Cache) PutIfCurrent(gen uint64, entries []Entry) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		return false
	}
	for _, e := range entries {
		c.entries[e.CoingeckoID] = e
	}
	return true
}

// Put writes entries unconditionally. Used for direct writes that are not
// racing a fetch (tests, single-shot lookups).
func (c *Cache) Put(entries ...Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range entries {
		c.entries[e.CoingeckoID] = e
	}
}

// Reset clears the cache and invalidates all in-flight fetch generations,
// forcing the next read to refetch from the oracle.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]Entry)
	c.gen++
}

// Snapshot returns a copy of every cached entry, fresh or stale. The holdings
// calculator reads prices through this so a concurrent write cannot interleave
// with one computation.
func (c *Cache) Snapshot() map[string]Entry {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string]Entry, len(c.entries))
	for id, e := range c.entries {
		out[id] = e
	}
	return out
}
