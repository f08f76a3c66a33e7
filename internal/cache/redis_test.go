// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

// skipIfNoRedis skips the test if Redis is not configured.
func skipIfNoRedis(t *testing.T) *RedisCache {
	t.Helper()
	url := os.Getenv("POLYSITE_TEST_REDIS_URL")
	if url == "" {
		t.Skip("Skipping Redis tests: POLYSITE_TEST_REDIS_URL not set")
	}
	prefix := "polysite-test:" + t.Name() + ":"
	cache, err := NewRedisCacheFromURL(url, prefix, time.Minute)
	if err != nil {
		t.Fatalf("failed to create Redis cache: %v", err)
	}
	t.Cleanup(func() {
		_ = cache.Clear(context.Background())
		_ = cache.Close()
	})
	return cache
}

func TestRedisCache_Basic(t *testing.T) {
	cache := skipIfNoRedis(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "key1", []byte("value1"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	val, err := cache.Get(ctx, "key1")
	if err != nil || string(val) != "value1" {
		t.Fatalf("Get = %q, %v", val, err)
	}
	if has, _ := cache.Has(ctx, "key1"); !has {
		t.Error("expected key1 to exist")
	}
	if err := cache.Delete(ctx, "key1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := cache.Get(ctx, "key1"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss, got %v", err)
	}
}

func TestRedisCache_TTL(t *testing.T) {
	cache := skipIfNoRedis(t)
	ctx := context.Background()

	_ = cache.Set(ctx, "short", []byte("v"), 100*time.Millisecond)
	time.Sleep(200 * time.Millisecond)

	if _, err := cache.Get(ctx, "short"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected expired key, got %v", err)
	}
}

func TestRedisCache_DeleteByPrefix(t *testing.T) {
	cache := skipIfNoRedis(t)
	ctx := context.Background()

	_ = cache.Set(ctx, "visitor:a:1", []byte("x"), 0)
	_ = cache.Set(ctx, "visitor:a:2", []byte("x"), 0)
	_ = cache.Set(ctx, "visitor:b:1", []byte("x"), 0)

	if err := cache.DeleteByPrefix(ctx, "visitor:a:"); err != nil {
		t.Fatalf("DeleteByPrefix failed: %v", err)
	}
	if has, _ := cache.Has(ctx, "visitor:a:1"); has {
		t.Error("visitor:a:1 should be deleted")
	}
	if has, _ := cache.Has(ctx, "visitor:b:1"); !has {
		t.Error("visitor:b:1 should remain")
	}
}

func TestRedisCache_Touch(t *testing.T) {
	cache := skipIfNoRedis(t)
	ctx := context.Background()

	_ = cache.Set(ctx, "visitor:a:rfq_products_v1", []byte("[]"), 150*time.Millisecond)
	ok, err := cache.Touch(ctx, "visitor:a:rfq_products_v1", time.Minute)
	if err != nil || !ok {
		t.Fatalf("Touch = %v, %v", ok, err)
	}
	time.Sleep(250 * time.Millisecond)
	if has, _ := cache.Has(ctx, "visitor:a:rfq_products_v1"); !has {
		t.Error("touched key should outlive its original TTL")
	}
	if ok, _ := cache.Touch(ctx, "visitor:missing:rfq_products_v1", time.Minute); ok {
		t.Error("Touch on a missing key should report false")
	}
}

func TestRedisCache_PingAndClose(t *testing.T) {
	cache := skipIfNoRedis(t)
	ctx := context.Background()

	if err := cache.Ping(ctx); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}
	_ = cache.Close()
	if err := cache.Ping(ctx); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("expected ErrCacheClosed, got %v", err)
	}
}

func TestRedisCache_InvalidURL(t *testing.T) {
	if _, err := NewRedisCacheFromURL("invalid-url", "test:", time.Minute); err == nil {
		t.Error("expected error with invalid URL, got nil")
	}
	if _, err := NewRedisCacheFromURL("", "test:", time.Minute); err == nil {
		t.Error("expected error with empty URL, got nil")
	}
}
