// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/joho/godotenv"

	"github.com/olegiv/polysite/internal/cache"
	"github.com/olegiv/polysite/internal/catalog"
	"github.com/olegiv/polysite/internal/config"
	"github.com/olegiv/polysite/internal/contact"
	"github.com/olegiv/polysite/internal/geoip"
	"github.com/olegiv/polysite/internal/handler"
	"github.com/olegiv/polysite/internal/i18n"
	"github.com/olegiv/polysite/internal/logging"
	"github.com/olegiv/polysite/internal/metrics"
	"github.com/olegiv/polysite/internal/middleware"
	"github.com/olegiv/polysite/internal/model"
	"github.com/olegiv/polysite/internal/nav"
	"github.com/olegiv/polysite/internal/scheduler"
	"github.com/olegiv/polysite/internal/search"
	"github.com/olegiv/polysite/internal/seo"
	"github.com/olegiv/polysite/internal/session"
	"github.com/olegiv/polysite/internal/store"
	"github.com/olegiv/polysite/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "polysite - bilingual polymer catalog site\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  POLYSITE_SECRET_KEY       CSRF key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  POLYSITE_SERVER_PORT      Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  POLYSITE_ENV              Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  POLYSITE_SITE_URL         Absolute site URL for canonical links\n")
		_, _ = fmt.Fprintf(os.Stderr, "  POLYSITE_STORAGE          Basket storage: session|cache (default: session)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  POLYSITE_DB_PATH          SQLite session database (default: ./data/sessions.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  POLYSITE_REDIS_URL        Redis URL for the shared cache (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  POLYSITE_GEOIP_DB_PATH    MaxMind country database (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  POLYSITE_CATALOG_REFRESH  Catalog refresh cron spec (default: @every 15m)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Println(version.Current().String())
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, recent := logging.Setup(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)
	slog.Info("starting polysite", "version", version.Version, "commit", version.GitCommit, "env", cfg.Env)

	var (
		db       *sql.DB
		sessions *scs.SessionManager
	)
	if cfg.Storage == config.StorageSession {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o750); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
		db, err = store.NewDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer func() { _ = db.Close() }()

		if err := store.Migrate(context.Background(), db); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		sessions = session.New(db, cfg.IsDevelopment())
	}

	cacheCfg := cache.DefaultConfig()
	cacheCfg.Prefix = cfg.CachePrefix
	cacheCfg.DefaultTTL = cfg.CacheTTL
	cacheCfg.MaxSize = cfg.CacheMaxSize
	if cfg.UseRedis() {
		cacheCfg.Backend = cache.BackendRedis
		cacheCfg.RedisURL = cfg.RedisURL
	}
	cached, err := cache.New(cacheCfg, logger)
	if err != nil {
		return fmt.Errorf("creating cache: %w", err)
	}
	defer func() { _ = cached.Cache.Close() }()
	if cached.IsFallback {
		slog.Warn("redis unavailable, using memory cache", "url", cache.SanitizeRedisURL(cfg.RedisURL))
	}

	src, err := catalog.NewSource(nil, cfg.SimulatedDelay, logger)
	if err != nil {
		return err
	}

	tr := i18n.New(logger)
	m := metrics.New()
	m.CatalogProducts.Set(float64(len(src.Snapshot().Products)))

	site := seo.SiteConfig{
		Name:           model.T(cfg.SiteNameEN, cfg.SiteNameAR),
		URL:            cfg.SiteURL,
		DefaultOGImage: cfg.DefaultOGImage,
		TwitterHandle:  cfg.TwitterHandle,
	}
	ds := src.Snapshot()
	table, err := seo.BuildTable(site, ds.Products, ds.Posts)
	if err != nil {
		return fmt.Errorf("building seo table: %w", err)
	}
	resolver := seo.NewResolver(table, site)
	searchSvc := search.NewService(src, cached.Cache, cfg.CacheTTL, logger)

	// Rebuild derived tables once a burst of reloads settles
	rebuild := search.NewDebouncer(0)
	defer rebuild.Stop()
	src.OnReload(func(ds *catalog.Dataset) {
		rebuild.Trigger(func() {
			searchSvc.Rebuild(context.Background(), ds.Products)
			t, err := seo.BuildTable(site, ds.Products, ds.Posts)
			if err != nil {
				slog.Error("failed to rebuild seo table", "error", err)
				return
			}
			resolver.SetTable(t)
		})
	})

	geo, err := geoip.Open(cfg.GeoIPDBPath)
	if err != nil {
		slog.Warn("geoip database unavailable, country prefill disabled", "error", err)
	}
	defer func() { _ = geo.Close() }()
	var lookup contact.CountryLookup
	if geo.Enabled() {
		lookup = geo
	}

	sched := scheduler.New(logger)
	if cfg.CatalogRefresh != "" {
		job := scheduler.CatalogRefreshJob(src, cfg.CatalogRefresh, func(err error) {
			m.RecordRefresh(err, len(src.Snapshot().Products))
		})
		if err := sched.Add(job); err != nil {
			return fmt.Errorf("scheduling catalog refresh: %w", err)
		}
	}
	if cfg.GeoIPEnabled() {
		if err := sched.Add(scheduler.GeoIPReloadJob(geo, "@daily")); err != nil {
			return fmt.Errorf("scheduling geoip reload: %w", err)
		}
	}
	sched.Start()
	defer sched.Stop()

	var stores handler.StoreFunc
	if sessions != nil {
		stores = handler.SessionStore(sessions)
	} else {
		stores = handler.CacheStore(cached.Cache, 0)
	}

	limiter := middleware.NewRateLimiter(cfg.ContactRPS, cfg.ContactBurst)
	limiter.Translate(tr)
	limiter.OnReject(func(*http.Request) { m.RateLimitRejects.Inc() })

	r := handler.NewRouter(handler.RouterConfig{
		Site:    handler.NewSiteHandler(nav.Default(), resolver, src, tr, cfg.IsDevelopment(), logger),
		Search:  handler.NewSearchHandler(searchSvc, tr, m, logger),
		RFQ:     handler.NewRFQHandler(stores, src, tr, m, logger),
		Contact: handler.NewContactHandler(stores, contact.NewSubmitter(cfg.SimulatedDelay, logger), lookup, tr, m, logger),
		Health: handler.NewHealthHandler(handler.HealthDeps{
			DB:           db,
			Cache:        cached.Cache,
			CacheBackend: cached.Backend,
			Catalog:      src,
			Recent:       recent,
			Jobs:         sched.Registry(),
		}),
		Metrics:        m,
		Sessions:       sessions,
		VisitorCookies: sessions == nil,
		SecureCookies:  !cfg.IsDevelopment(),
		CSRF: middleware.CSRF(middleware.DefaultCSRFConfig(
			[]byte(cfg.SecretKey)[:config.MinSecretKeyLength], cfg.IsDevelopment(), cfg.TrustedOrigins)),
		ContactLimiter: limiter,
		Security:       middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment()),
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "storage", cfg.Storage, "cache", cached.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
