// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/olegiv/polysite/internal/locale"
)

// ContextKeyLanguage holds the LanguageInfo of the request.
const ContextKeyLanguage ContextKey = "language"

// LanguageInfo is the language context of a request.
type LanguageInfo struct {
	// Locale is forced by the URL: the /ar prefix means Arabic, anything
	// else English.
	Locale locale.Locale
	// Path is the request path with the locale prefix removed.
	Path string
	// Preferred is the visitor's stored or negotiated preference. It may
	// differ from Locale.
	Preferred locale.Locale
}

// Language resolves the request language.
//
// A ?lang=xx query stores the preference cookie. For page requests it also
// redirects to the same page in that language; API requests are served in
// the requested language directly.
func Language(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		neutral, lang := locale.StripPrefix(r.URL.Path)
		preferred := preferredLocale(r)

		if q := strings.ToLower(r.URL.Query().Get("lang")); q != "" && locale.IsSupported(q) {
			requested := locale.Language(q)
			SetLanguageCookie(w, requested)
			preferred = locale.Of(requested)

			if isAPIPath(neutral) {
				lang = requested
			} else if requested != lang && (r.Method == http.MethodGet || r.Method == http.MethodHead) {
				query := r.URL.Query()
				query.Del("lang")
				target := locale.Localize(neutral, requested)
				if enc := query.Encode(); enc != "" {
					target += "?" + enc
				}
				http.Redirect(w, r, target, http.StatusSeeOther)
				return
			}
		}

		info := LanguageInfo{
			Locale:    locale.Of(lang),
			Path:      neutral,
			Preferred: preferred,
		}
		ctx := context.WithValue(r.Context(), ContextKeyLanguage, info)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// preferredLocale reads the preference cookie, then Accept-Language.
func preferredLocale(r *http.Request) locale.Locale {
	if c, err := r.Cookie(locale.PreferenceCookie); err == nil && locale.IsSupported(c.Value) {
		return locale.Resolve(c.Value)
	}
	return locale.Negotiate(r.Header.Get("Accept-Language"))
}

// GetLanguage returns the request language, resolving it from the path
// when the middleware did not run.
func GetLanguage(r *http.Request) LanguageInfo {
	if info, ok := r.Context().Value(ContextKeyLanguage).(LanguageInfo); ok {
		return info
	}
	neutral, lang := locale.StripPrefix(r.URL.Path)
	return LanguageInfo{Locale: locale.Of(lang), Path: neutral, Preferred: locale.Of(lang)}
}

// SetLanguageCookie stores the language preference for a year.
func SetLanguageCookie(w http.ResponseWriter, lang locale.Language) {
	http.SetCookie(w, &http.Cookie{
		Name:     locale.PreferenceCookie,
		Value:    string(lang),
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
