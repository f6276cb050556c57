package resolve_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/outpost-tools/fac-resolve/internal/dep"
	"github.com/outpost-tools/fac-resolve/internal/resolve"
	"github.com/outpost-tools/fac-resolve/internal/resolve/resolvetest"
)

type countingPortal struct {
	*resolvetest.Portal
	calls int64
}

func (c *countingPortal) Get(ctx context.Context, name dep.ModName) (resolve.Mod, error) {
	atomic.AddInt64(&c.calls, 1)
	return c.Portal.Get(ctx, name)
}

func TestCachingPortalServesFromCache(t *testing.T) {
	inner := &countingPortal{Portal: resolvetest.New().Add(release("A", "1.0.0", "base"))}
	c := resolve.NewCachingPortal(inner)

	if _, err := c.Get(context.Background(), "A"); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, err := c.Get(context.Background(), "A"); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("got %d underlying calls, want 1 (second Get should hit cache)", inner.calls)
	}
}

func TestCachingPortalPrefetchWarmsCache(t *testing.T) {
	inner := &countingPortal{Portal: resolvetest.New().Add(release("A", "1.0.0")).Add(release("B", "1.0.0"))}
	c := resolve.NewCachingPortal(inner)

	c.Prefetch(context.Background(), []dep.ModName{"A", "B"}, 4)
	if inner.calls != 2 {
		t.Fatalf("got %d calls after Prefetch, want 2", inner.calls)
	}

	if _, err := c.Get(context.Background(), "A"); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if inner.calls != 2 {
		t.Errorf("got %d calls after cached Get, want still 2", inner.calls)
	}
}

func TestCachingPortalPrefetchCachesErrors(t *testing.T) {
	inner := &countingPortal{Portal: resolvetest.New()}
	c := resolve.NewCachingPortal(inner)

	c.Prefetch(context.Background(), []dep.ModName{"missing"}, 2)
	if inner.calls != 1 {
		t.Fatalf("got %d calls after Prefetch, want 1", inner.calls)
	}
	if _, err := c.Get(context.Background(), "missing"); err == nil {
		t.Error("Get succeeded, want cached not-found error")
	}
	if inner.calls != 1 {
		t.Errorf("got %d calls after cached error Get, want still 1", inner.calls)
	}
}
