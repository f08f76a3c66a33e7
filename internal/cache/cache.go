// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache provides the byte caches behind search indexes and the
// cache-backed basket store.
package cache

import (
	"context"
	"time"
)

// Cacher is a thread-safe byte cache. Memory and Redis backends share it.
type Cacher interface {
	// Get returns ErrCacheMiss when the key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value; a zero TTL uses the backend default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Has(ctx context.Context, key string) (bool, error)
	Close() error
}

// Toucher is implemented by caches that can push a key's expiry forward
// without rewriting its value. Visitor baskets use it for sliding expiry.
type Toucher interface {
	// Touch reports false when the key is absent or already expired.
	Touch(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// Key namespaces shared by every backend.
const (
	NamespaceVisitor = "visitor:"
	NamespaceSearch  = "search:"
)

// VisitorPrefix returns the key prefix owning every record of one visitor.
func VisitorPrefix(visitorID string) string {
	return NamespaceVisitor + visitorID + ":"
}

// StatsProvider is implemented by caches that track hit statistics.
type StatsProvider interface {
	Stats() Stats
	ResetStats()
}

// Stats holds cache statistics.
type Stats struct {
	Backend string  `json:"backend"`
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	Sets    int64   `json:"sets"`
	Items   int     `json:"items"`
	HitRate float64 `json:"hit_rate"`
	Size    int64   `json:"size_bytes,omitempty"`
}

func hitRate(hits, misses int64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total) * 100
}

// Error represents an error type for cache operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrCacheMiss indicates the key was not found in cache or has expired.
	ErrCacheMiss Error = "cache miss"

	// ErrCacheClosed indicates the cache has been closed.
	ErrCacheClosed Error = "cache closed"
)
