// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// VisitorCookieName names the anonymous visitor id cookie.
const VisitorCookieName = "polysite_vid"

// ContextKeyVisitor holds the visitor id.
const ContextKeyVisitor ContextKey = "visitor"

// Visitor assigns each browser a random id, used to namespace its records
// in the cache storage backend. Invalid cookie values are replaced.
func Visitor(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if c, err := r.Cookie(VisitorCookieName); err == nil {
				if parsed, err := uuid.Parse(c.Value); err == nil {
					id = parsed.String()
				}
			}
			if id == "" {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     VisitorCookieName,
					Value:    id,
					Path:     "/",
					MaxAge:   365 * 24 * 60 * 60,
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}
			ctx := context.WithValue(r.Context(), ContextKeyVisitor, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetVisitorID returns the visitor id, or "" outside the middleware.
func GetVisitorID(r *http.Request) string {
	id, _ := r.Context().Value(ContextKeyVisitor).(string)
	return id
}
