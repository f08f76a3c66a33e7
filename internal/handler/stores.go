// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/polysite/internal/cache"
	"github.com/olegiv/polysite/internal/middleware"
	"github.com/olegiv/polysite/internal/storage"
)

// StoreFunc returns the per-visitor storage backing the basket of a
// request.
type StoreFunc func(r *http.Request) storage.Store

// SessionStore keeps baskets in the scs session. Routes using it must run
// behind sm.LoadAndSave.
func SessionStore(sm *scs.SessionManager) StoreFunc {
	s := storage.NewSession(sm)
	return func(*http.Request) storage.Store {
		return s
	}
}

// CacheStore keeps baskets in c, namespaced by the visitor cookie. Routes
// using it must run behind middleware.Visitor.
func CacheStore(c cache.Cacher, ttl time.Duration) StoreFunc {
	return func(r *http.Request) storage.Store {
		return storage.NewCache(c, middleware.GetVisitorID(r), ttl)
	}
}

// MemoryStore returns one shared in-memory store. Used by tests.
func MemoryStore(m *storage.Memory) StoreFunc {
	return func(*http.Request) storage.Store {
		return m
	}
}
