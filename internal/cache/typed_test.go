// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

type testItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func newTestMemory(t *testing.T) *MemoryCache {
	t.Helper()
	c := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Hour})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestTypedCache_BasicOperations(t *testing.T) {
	mem := newTestMemory(t)
	cache := NewTypedCache[[]testItem](mem, "items:", time.Hour)
	ctx := context.Background()

	items := []testItem{{ID: "p1", Title: "rHDPE"}, {ID: "p2", Title: "PP"}}
	if err := cache.Set(ctx, "en", &items); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, found := cache.Get(ctx, "en")
	if !found {
		t.Fatal("expected to find en")
	}
	if len(*got) != 2 || (*got)[0].Title != "rHDPE" {
		t.Errorf("got %+v, want %+v", *got, items)
	}

	// stored under the prefixed key
	if has, _ := mem.Has(ctx, "items:en"); !has {
		t.Error("expected prefixed key in underlying cache")
	}
}

func TestTypedCache_CacheMiss(t *testing.T) {
	cache := NewTypedCache[testItem](newTestMemory(t), "", time.Hour)

	if _, found := cache.Get(context.Background(), "nonexistent"); found {
		t.Error("expected not to find nonexistent key")
	}
}

func TestTypedCache_UndecodableValue(t *testing.T) {
	mem := newTestMemory(t)
	ctx := context.Background()
	_ = mem.Set(ctx, "bad", []byte("{not json"), 0)

	cache := NewTypedCache[testItem](mem, "", time.Hour)
	if _, found := cache.Get(ctx, "bad"); found {
		t.Error("expected undecodable value to be a miss")
	}
}

func TestTypedCache_DeleteAndHas(t *testing.T) {
	cache := NewTypedCache[testItem](newTestMemory(t), "x:", time.Hour)
	ctx := context.Background()

	_ = cache.Set(ctx, "a", &testItem{ID: "a"})
	if !cache.Has(ctx, "a") {
		t.Fatal("expected a to exist")
	}
	if err := cache.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if cache.Has(ctx, "a") {
		t.Error("expected a to be deleted")
	}
}

func TestTypedCache_SetWithTTL(t *testing.T) {
	cache := NewTypedCache[testItem](newTestMemory(t), "", time.Hour)
	ctx := context.Background()

	if err := cache.SetWithTTL(ctx, "short", &testItem{ID: "s"}, 30*time.Millisecond); err != nil {
		t.Fatalf("SetWithTTL failed: %v", err)
	}
	time.Sleep(60 * time.Millisecond)

	if _, found := cache.Get(ctx, "short"); found {
		t.Error("expected short to be expired")
	}
}

func TestTypedCache_GetOrSet(t *testing.T) {
	cache := NewTypedCache[testItem](newTestMemory(t), "", time.Hour)
	ctx := context.Background()

	calls := 0
	loader := func() (*testItem, error) {
		calls++
		return &testItem{ID: "p1"}, nil
	}

	for i := 0; i < 2; i++ {
		item, err := cache.GetOrSet(ctx, "p1", loader)
		if err != nil {
			t.Fatalf("GetOrSet failed: %v", err)
		}
		if item.ID != "p1" {
			t.Errorf("ID = %q, want p1", item.ID)
		}
	}
	if calls != 1 {
		t.Errorf("loader called %d times, want 1", calls)
	}
}

func TestTypedCache_GetOrSetError(t *testing.T) {
	cache := NewTypedCache[testItem](newTestMemory(t), "", time.Hour)
	ctx := context.Background()

	wantErr := errors.New("load failed")
	_, err := cache.GetOrSet(ctx, "p1", func() (*testItem, error) { return nil, wantErr })
	if !errors.Is(err, wantErr) {
		t.Errorf("expected %v, got %v", wantErr, err)
	}
	if cache.Has(ctx, "p1") {
		t.Error("expected key to not be cached after error")
	}
}
