package resolve

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/outpost-tools/fac-resolve/internal/dep"
)

// CachingPortal wraps a Portal with an in-memory, concurrency-safe cache
// of Get results, and a Prefetch method that warms the cache for a batch
// of names in parallel. LoadClosure's recursive walk is single-threaded
// (the candidate graph it builds is not safe for concurrent writes), but
// the network round trips behind each Get are independent, so fetching a
// requirement list's mods up front hides most of that latency.
type CachingPortal struct {
	Portal Portal

	mu    sync.Mutex
	cache map[dep.ModName]cacheEntry
}

type cacheEntry struct {
	mod Mod
	err error
}

// NewCachingPortal wraps portal in a CachingPortal.
func NewCachingPortal(portal Portal) *CachingPortal {
	return &CachingPortal{Portal: portal, cache: make(map[dep.ModName]cacheEntry)}
}

// Get implements Portal, serving from the cache when present.
func (c *CachingPortal) Get(ctx context.Context, name dep.ModName) (Mod, error) {
	c.mu.Lock()
	entry, ok := c.cache[name]
	c.mu.Unlock()
	if ok {
		return entry.mod, entry.err
	}
	return c.fetch(ctx, name)
}

func (c *CachingPortal) fetch(ctx context.Context, name dep.ModName) (Mod, error) {
	mod, err := c.Portal.Get(ctx, name)
	c.mu.Lock()
	c.cache[name] = cacheEntry{mod: mod, err: err}
	c.mu.Unlock()
	return mod, err
}

// Prefetch fetches every name in names concurrently, bounded to maxConcurrency
// in-flight requests, and populates the cache with the results. It never
// returns an error: a failed fetch is cached as an error and surfaces the
// next time that name is Get, exactly as if Prefetch had not been called.
func (c *CachingPortal) Prefetch(ctx context.Context, names []dep.ModName, maxConcurrency int) {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrency)

	for _, name := range names {
		name := name
		g.Go(func() error {
			c.fetch(ctx, name)
			return nil
		})
	}
	g.Wait()
}
