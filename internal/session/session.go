// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures the per-browser session that carries the RFQ
// basket between page loads.
package session

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// CookieName is the session cookie name outside production.
const CookieName = "polysite_session"

// Lifetime is how long an idle basket survives.
const Lifetime = 30 * 24 * time.Hour

// New creates a session manager backed by the SQLite sessions table.
// The cookie is persistent so the basket outlives the browser session.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()

	sm.Store = sqlite3store.NewWithCleanupInterval(db, time.Hour)

	sm.Lifetime = Lifetime
	sm.IdleTimeout = 7 * 24 * time.Hour
	sm.Cookie.Name = CookieName
	sm.Cookie.HttpOnly = true
	sm.Cookie.Persist = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev
	sm.Cookie.Path = "/"

	// __Host- requires Secure and Path=/ with no Domain
	if !isDev {
		sm.Cookie.Name = "__Host-" + CookieName
	}

	return sm
}
