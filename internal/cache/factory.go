// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"fmt"
	"log/slog"
	"net/url"
	"time"
)

// Backend names.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config holds configuration for cache creation.
type Config struct {
	Backend          string // "memory" or "redis"
	RedisURL         string
	Prefix           string
	DefaultTTL       time.Duration
	MaxSize          int // memory only, 0 = unlimited
	CleanupInterval  time.Duration
	FallbackToMemory bool // use memory when Redis is unreachable
}

// DefaultConfig returns default cache configuration.
func DefaultConfig() Config {
	return Config{
		Backend:          BackendMemory,
		Prefix:           "polysite:",
		DefaultTTL:       time.Hour,
		MaxSize:          10000,
		CleanupInterval:  time.Minute,
		FallbackToMemory: true,
	}
}

// Result describes the cache that was actually created.
type Result struct {
	Cache      Cacher
	Backend    string
	IsFallback bool
}

// New creates the configured cache. When Redis is requested but cannot be
// reached and FallbackToMemory is set, a memory cache is returned instead.
func New(cfg Config, logger *slog.Logger) (Result, error) {
	if cfg.Backend == BackendRedis {
		rc, err := NewRedisCacheFromURL(cfg.RedisURL, cfg.Prefix, cfg.DefaultTTL)
		if err == nil {
			if logger != nil {
				logger.Info("using redis cache", "url", SanitizeRedisURL(cfg.RedisURL))
			}
			return Result{Cache: rc, Backend: BackendRedis}, nil
		}
		if !cfg.FallbackToMemory {
			return Result{}, fmt.Errorf("creating redis cache: %w", err)
		}
		if logger != nil {
			logger.Warn("redis unavailable, falling back to memory cache",
				"url", SanitizeRedisURL(cfg.RedisURL), "error", err)
		}
		return Result{Cache: newMemory(cfg), Backend: BackendMemory, IsFallback: true}, nil
	}

	return Result{Cache: newMemory(cfg), Backend: BackendMemory}, nil
}

func newMemory(cfg Config) *MemoryCache {
	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      cfg.DefaultTTL,
		MaxSize:         cfg.MaxSize,
		CleanupInterval: cfg.CleanupInterval,
	})
}

// SanitizeRedisURL masks the password in a Redis URL for logging.
func SanitizeRedisURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "[invalid URL]"
	}
	if _, has := u.User.Password(); has {
		u.User = url.UserPassword(u.User.Username(), "***")
	}
	return u.String()
}
