// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/polysite/internal/metrics"
	"github.com/olegiv/polysite/internal/middleware"
)

// DefaultRequestTimeout bounds request handling.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig wires the handlers and middleware into a router.
type RouterConfig struct {
	Site    *SiteHandler
	Search  *SearchHandler
	RFQ     *RFQHandler
	Contact *ContactHandler
	Health  *HealthHandler
	Metrics *metrics.Metrics

	// Sessions loads and saves the scs session around the basket routes.
	// Set it when baskets are kept in the session.
	Sessions *scs.SessionManager
	// VisitorCookies assigns visitor ids on the basket routes. Set it when
	// baskets are kept in the cache.
	VisitorCookies bool
	SecureCookies  bool

	// CSRF protects the state-changing routes. Nil disables it.
	CSRF func(http.Handler) http.Handler
	// ContactLimiter throttles form submissions per client IP. Nil
	// disables it.
	ContactLimiter *middleware.RateLimiter

	Security       middleware.SecurityHeadersConfig
	RequestTimeout time.Duration
}

// NewRouter builds the site router. Every localized route is served both
// at its plain path and under the /ar prefix.
func NewRouter(cfg RouterConfig) http.Handler {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(cfg.Metrics.Middleware)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(chimw.Timeout(timeout))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(cfg.Security))

	// Locale-independent endpoints
	r.Get("/healthz", cfg.Health.Health)
	r.Get("/healthz/live", cfg.Health.Liveness)
	r.Handle("/metrics", cfg.Metrics.Handler())
	r.Get("/robots.txt", cfg.Site.Robots)
	r.Get("/sitemap.xml", cfg.Site.Sitemap)

	localized := chi.NewRouter()
	localized.Use(middleware.Language)

	localized.Route("/api", func(api chi.Router) {
		api.Get("/nav", cfg.Site.Nav)
		api.Get("/breadcrumbs", cfg.Site.Breadcrumbs)
		api.Get("/seo", cfg.Site.SEO)
		api.Get("/search", cfg.Search.Search)

		// Routes touching the visitor's basket
		api.Group(func(g chi.Router) {
			if cfg.Sessions != nil {
				g.Use(cfg.Sessions.LoadAndSave)
			}
			if cfg.VisitorCookies {
				g.Use(middleware.Visitor(cfg.SecureCookies))
			}
			if cfg.CSRF != nil {
				g.Use(cfg.CSRF)
			}

			g.Get("/rfq", cfg.RFQ.List)
			g.Post("/rfq", cfg.RFQ.Add)
			g.Delete("/rfq/{id}", cfg.RFQ.Remove)
			g.Post("/rfq/clear", cfg.RFQ.Clear)
			g.Post("/rfq/reset", cfg.RFQ.Reset)

			g.Get("/contact/defaults", cfg.Contact.Defaults)
			if cfg.ContactLimiter != nil {
				g.With(cfg.ContactLimiter.Middleware).Post("/contact", cfg.Contact.Submit)
			} else {
				g.Post("/contact", cfg.Contact.Submit)
			}
		})

		api.NotFound(func(w http.ResponseWriter, _ *http.Request) {
			writeJSONError(w, http.StatusNotFound, "not_found")
		})
		api.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
			writeJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed")
		})
	})

	localized.Get("/", cfg.Site.Page)
	localized.Get("/*", cfg.Site.Page)

	r.Mount("/ar", localized)
	r.Mount("/", localized)
	return r
}
