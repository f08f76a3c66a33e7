// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package storage

import (
	"context"
	"errors"
	"time"

	"github.com/olegiv/polysite/internal/cache"
)

// DefaultCacheTTL is how long a visitor record lives in the cache backend.
const DefaultCacheTTL = 30 * 24 * time.Hour

// Cache stores records in a shared cache under a per-visitor namespace.
type Cache struct {
	cache     cache.Cacher
	namespace string
	ttl       time.Duration
}

var _ Store = (*Cache)(nil)

// NewCache creates a store scoped to visitorID. A non-positive ttl uses
// DefaultCacheTTL.
func NewCache(c cache.Cacher, visitorID string, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		cache:     c,
		namespace: cache.VisitorPrefix(visitorID),
		ttl:       ttl,
	}
}

// Key returns the namespaced cache key for key.
func (c *Cache) Key(key string) string {
	return c.namespace + key
}

// Get implements Store. Hits on backends that support it slide the
// record's expiry forward by the store TTL.
func (c *Cache) Get(ctx context.Context, key string) (data []byte, res Result) {
	res = guard("get", key, func() error {
		v, err := c.cache.Get(ctx, c.Key(key))
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil
		}
		if err != nil {
			return err
		}
		data = v
		if t, ok := c.cache.(cache.Toucher); ok {
			// A failed refresh leaves the old expiry; the read still stands.
			_, _ = t.Touch(ctx, c.Key(key), c.ttl)
		}
		return nil
	})
	if !res.OK {
		data = nil
	}
	return data, res
}

// Set implements Store.
func (c *Cache) Set(ctx context.Context, key string, value []byte) Result {
	return guard("set", key, func() error {
		return c.cache.Set(ctx, c.Key(key), value, c.ttl)
	})
}

// Delete implements Store.
func (c *Cache) Delete(ctx context.Context, key string) Result {
	return guard("delete", key, func() error {
		return c.cache.Delete(ctx, c.Key(key))
	})
}
