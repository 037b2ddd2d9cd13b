// Package querycache keeps action results alive between calls, the way
// the storefront keeps list pages on screen while the next page loads.
// Entries are keyed by action name plus resolved parameters; identical
// concurrent lookups share one in-flight fetch, and entries past their
// staleness window are served once more while a background refetch
// replaces them.
package querycache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry struct {
	value     any
	fetchedAt time.Time
}

type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	group   singleflight.Group

	// now is swapped out in tests.
	now func() time.Time
}

func New() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Key builds a cache key from an action name and its resolved
// parameters, so products page 2 and page 3 never collide.
func Key(action string, params ...any) string {
	if len(params) == 0 {
		return action
	}
	parts := make([]string, 0, len(params)+1)
	parts = append(parts, action)
	for _, p := range params {
		parts = append(parts, fmt.Sprint(p))
	}
	return strings.Join(parts, ":")
}

// Get returns the cached value for key when one exists, fetching
// otherwise. A stale value is still returned immediately, with the
// refetch running in the background; the previous data stays visible
// until the new data arrives.
func (c *Cache) Get(ctx context.Context, key string, ttl time.Duration, fetch func(ctx context.Context) (any, error)) (any, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if ok {
		if c.now().Sub(e.fetchedAt) < ttl {
			return e.value, nil
		}
		c.refresh(key, fetch)
		return e.value, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.store(key, v)
		return v, nil
	})
	return v, err
}

// refresh refetches a stale key in the background. singleflight keeps
// concurrent stale hits from stacking up requests; a failed refetch
// leaves the stale entry in place for the next access.
func (c *Cache) refresh(key string, fetch func(ctx context.Context) (any, error)) {
	go func() {
		_, _, _ = c.group.Do(key, func() (any, error) {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			v, err := fetch(ctx)
			if err != nil {
				return nil, err
			}
			c.store(key, v)
			return v, nil
		})
	}()
}

func (c *Cache) store(key string, v any) {
	c.mu.Lock()
	c.entries[key] = entry{value: v, fetchedAt: c.now()}
	c.mu.Unlock()
}

// Invalidate drops one key; the next access refetches in the
// foreground. Mutations call this so their resource lists reload.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// InvalidatePrefix drops every key under an action prefix, e.g. all
// cached product pages after a product mutation.
func (c *Cache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	c.mu.Unlock()
}

// Sweep removes entries older than maxAge. The daemon runs this on a
// schedule so abandoned keys do not accumulate.
func (c *Cache) Sweep(maxAge time.Duration) int {
	cutoff := c.now().Add(-maxAge)
	removed := 0
	c.mu.Lock()
	for k, e := range c.entries {
		if e.fetchedAt.Before(cutoff) {
			delete(c.entries, k)
			removed++
		}
	}
	c.mu.Unlock()
	return removed
}

// Len reports the number of live entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Get is the typed wrapper around Cache.Get.
func Get[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, fetch func(ctx context.Context) (T, error)) (T, error) {
	v, err := c.Get(ctx, key, ttl, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
