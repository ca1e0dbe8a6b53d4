// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package seedfilter

import (
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// DefaultCacheTTL is how long a filtered result set stays valid. Pagination
// requests for the same search arrive within seconds of each other, so a
// short window is enough to avoid re-querying the aggregator per page.
const DefaultCacheTTL = 60 * time.Second

// Intent captures the parameters that define one logical search. Pagination
// parameters are deliberately absent: every page of a search shares one
// cache entry.
type Intent struct {
	Query       string
	Category    string
	ImdbID      string
	TvdbID      string
	Season      string
	Episode     string
	RequestType string
}

// Fingerprint derives a stable cache key from the search intent. Fields are
// hashed in a fixed order with length framing so adjacent values cannot
// collide by concatenation. A hash collision would merge two distinct
// intents for one TTL window; that is an accepted tradeoff of the compact key.
func (i Intent) Fingerprint() string {
	digest := xxhash.New()

	for _, field := range []string{i.Query, i.Category, i.ImdbID, i.TvdbID, i.Season, i.Episode, i.RequestType} {
		_, _ = digest.WriteString(strconv.Itoa(len(field)))
		_, _ = digest.WriteString(":")
		_, _ = digest.WriteString(field)
	}

	return strconv.FormatUint(digest.Sum64(), 16)
}

type cacheEntry struct {
	results   []Result
	createdAt time.Time
}

// Cache stores filtered result sets per search fingerprint for a fixed time
// window. It is shared by all request handlers and safe for concurrent use.
// The clock is injectable so expiry is deterministic under test.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// CacheOption customizes a Cache.
type CacheOption func(*Cache)

// WithClock overrides the cache's time source.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) {
		c.now = now
	}
}

// NewCache creates a result cache with the given TTL. A non-positive TTL
// falls back to DefaultCacheTTL.
func NewCache(ttl time.Duration, opts ...CacheOption) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	c := &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Get returns the cached result list for the fingerprint if it exists and is
// still within its TTL. A stale entry counts as a miss and is dropped.
func (c *Cache) Get(fingerprint string) ([]Result, bool) {
	c.mu.RLock()
	entry, ok := c.entries[fingerprint]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if c.now().Sub(entry.createdAt) >= c.ttl {
		c.mu.Lock()
		// Re-check under the write lock; another goroutine may have stored
		// a fresh entry in the meantime.
		if current, ok := c.entries[fingerprint]; ok && c.now().Sub(current.createdAt) >= c.ttl {
			delete(c.entries, fingerprint)
		}
		c.mu.Unlock()
		return nil, false
	}

	return entry.results, true
}

// Set stores the result list under the fingerprint, overwriting any previous
// entry and resetting its age.
func (c *Cache) Set(fingerprint string, results []Result) {
	c.mu.Lock()
	c.entries[fingerprint] = cacheEntry{
		results:   results,
		createdAt: c.now(),
	}
	c.mu.Unlock()
}

// Sweep removes every entry older than the TTL and reports how many were
// evicted. Callers invoke it opportunistically before lookups.
func (c *Cache) Sweep() int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	evicted := 0
	for key, entry := range c.entries {
		if now.Sub(entry.createdAt) >= c.ttl {
			delete(c.entries, key)
			evicted++
		}
	}

	return evicted
}

// Len reports the number of live entries, stale ones included until the next
// sweep.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
