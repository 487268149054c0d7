// Package lookup provides a duplicate-suppressing memoized keyed lookup:
// at most one fetch per distinct key for the lifetime of the cache, shared
// by every consumer of that key.
package lookup

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Fetch resolves one key. A failed or empty resolution falls back to the key
// itself, so consumers never stay stuck on a placeholder.
type Fetch func(ctx context.Context, key string) (string, error)

type Cache struct {
	fetch Fetch

	mu      sync.Mutex
	results map[string]string
	group   singleflight.Group
}

func New(fetch Fetch) *Cache {
	return &Cache{fetch: fetch, results: map[string]string{}}
}

// Resolve returns the cached value for key, fetching it once if needed.
// Concurrent calls for the same key share a single in-flight fetch.
func (c *Cache) Resolve(ctx context.Context, key string) string {
	c.mu.Lock()
	if v, ok := c.results[key]; ok {
		c.mu.Unlock()
		return v
	}
	c.mu.Unlock()

	v, _, _ := c.group.Do(key, func() (any, error) {
		// Re-check under the flight: a fetch that completed between the
		// fast-path check and Do must not run again.
		c.mu.Lock()
		if v, ok := c.results[key]; ok {
			c.mu.Unlock()
			return v, nil
		}
		c.mu.Unlock()

		res, err := c.fetch(ctx, key)
		if err != nil || res == "" {
			res = key
		}
		c.mu.Lock()
		c.results[key] = res
		c.mu.Unlock()
		return res, nil
	})
	return v.(string)
}

// Peek reports the cached value without fetching.
func (c *Cache) Peek(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.results[key]
	return v, ok
}

// Reset drops all cached results. Called on screen teardown/reload.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = map[string]string{}
}
