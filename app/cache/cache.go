// Package cache provides the short-lived TTL cache the menu and
// delivery services sit behind, so the webhook backend isn't hit on
// every page load.
package cache

import (
	"context"
	"sync"
	"time"
)

// Clock returns the current time; injected so tests can control expiry.
type Clock func() time.Time

// FetchFunc loads a fresh value from the backing source.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// TTL caches a single value for a fixed duration. When the value is
// stale it is refetched; if the refetch fails and a previous value
// exists, the stale value is served instead so a backend hiccup doesn't
// blank the menu.
type TTL[T any] struct {
	mu        sync.Mutex
	ttl       time.Duration
	clock     Clock
	fetch     FetchFunc[T]
	value     T
	hasValue  bool
	fetchedAt time.Time
}

// New creates a TTL cache. A nil clock uses time.Now.
func New[T any](ttl time.Duration, clock Clock, fetch FetchFunc[T]) *TTL[T] {
	if clock == nil {
		clock = time.Now
	}
	return &TTL[T]{ttl: ttl, clock: clock, fetch: fetch}
}

// Get returns the cached value, refetching when stale.
func (c *TTL[T]) Get(ctx context.Context) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock()
	if c.hasValue && now.Sub(c.fetchedAt) < c.ttl {
		return c.value, nil
	}

	fresh, err := c.fetch(ctx)
	if err != nil {
		if c.hasValue {
			// Serve stale over nothing.
			return c.value, nil
		}
		var zero T
		return zero, err
	}

	c.value = fresh
	c.hasValue = true
	c.fetchedAt = now
	return c.value, nil
}

// Invalidate drops the cached value so the next Get refetches. Called
// after admin writes so dashboards see their own changes immediately.
func (c *TTL[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hasValue = false
}
