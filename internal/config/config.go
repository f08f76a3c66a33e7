// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the service configuration from POLYSITE_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/robfig/cron/v3"
)

// EnvPrefix is prepended to every variable name.
const EnvPrefix = "POLYSITE_"

// Basket storage backends.
const (
	StorageSession = "session"
	StorageCache   = "cache"
)

// knownWeakSecrets are example values that must never reach production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// MinSecretKeyLength is the CSRF key length.
const MinSecretKeyLength = 32

// Config holds the application configuration.
type Config struct {
	ServerHost string `env:"SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"SERVER_PORT" envDefault:"8080"`
	Env        string `env:"ENV" envDefault:"development"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	SecretKey  string `env:"SECRET_KEY,required"`

	// Site identity used for titles, canonical URLs and JSON-LD.
	SiteNameEN     string `env:"SITE_NAME_EN" envDefault:"PolyNova"`
	SiteNameAR     string `env:"SITE_NAME_AR" envDefault:"بولي نوفا"`
	SiteURL        string `env:"SITE_URL" envDefault:"http://localhost:8080"`
	DefaultOGImage string `env:"OG_IMAGE" envDefault:"/static/og-default.png"`
	TwitterHandle  string `env:"TWITTER_HANDLE"`

	// Basket persistence.
	Storage string `env:"STORAGE" envDefault:"session"`
	DBPath  string `env:"DB_PATH" envDefault:"./data/sessions.db"`

	// Cache backend for search indexes and cache-backed baskets.
	RedisURL     string        `env:"REDIS_URL"`
	CachePrefix  string        `env:"CACHE_PREFIX" envDefault:"polysite:"`
	CacheTTL     time.Duration `env:"CACHE_TTL" envDefault:"1h"`
	CacheMaxSize int           `env:"CACHE_MAX_SIZE" envDefault:"10000"`

	// Simulated latency of the catalog source and contact endpoint.
	SimulatedDelay time.Duration `env:"SIMULATED_DELAY" envDefault:"300ms"`

	// Contact endpoint rate limit per client IP.
	ContactRPS   float64 `env:"CONTACT_RPS" envDefault:"0.2"`
	ContactBurst int     `env:"CONTACT_BURST" envDefault:"3"`

	GeoIPDBPath string `env:"GEOIP_DB_PATH"`

	// CatalogRefresh is a cron spec; empty disables periodic refresh.
	CatalogRefresh string `env:"CATALOG_REFRESH" envDefault:"@every 15m"`

	// TrustedOrigins are extra host[:port] values allowed to post.
	TrustedOrigins []string `env:"TRUSTED_ORIGINS" envSeparator:","`
}

// IsDevelopment reports whether the service runs in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns host:port.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedis reports whether a Redis URL is configured.
func (c Config) UseRedis() bool {
	return c.RedisURL != ""
}

// GeoIPEnabled reports whether a GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// Load parses the process environment.
func Load() (*Config, error) {
	return LoadFrom(nil)
}

// LoadFrom parses vars instead of the process environment when vars is
// non-nil. Keys include the prefix.
func LoadFrom(vars map[string]string) (*Config, error) {
	opts := env.Options{Prefix: EnvPrefix}
	if vars != nil {
		opts.Environment = vars
	}

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that struct tags cannot express.
func (c *Config) Validate() error {
	var errs []error

	if len(c.SecretKey) < MinSecretKeyLength {
		errs = append(errs, fmt.Errorf("%sSECRET_KEY must be at least %d bytes long, got %d bytes; "+
			"generate one with: openssl rand -base64 32", EnvPrefix, MinSecretKeyLength, len(c.SecretKey)))
	}
	for _, weak := range knownWeakSecrets {
		if c.SecretKey == weak {
			errs = append(errs, fmt.Errorf("%sSECRET_KEY is a known default value and must not be used", EnvPrefix))
		}
	}
	if len(c.SecretKey) >= MinSecretKeyLength && !hasMinimumEntropy(c.SecretKey) {
		slog.Warn(EnvPrefix + "SECRET_KEY has low character diversity")
	}

	if c.ServerPort < 1 || c.ServerPort > 65535 {
		errs = append(errs, fmt.Errorf("%sSERVER_PORT out of range: %d", EnvPrefix, c.ServerPort))
	}

	switch c.Storage {
	case StorageSession:
		if c.DBPath == "" {
			errs = append(errs, fmt.Errorf("%sDB_PATH is required for session storage", EnvPrefix))
		}
	case StorageCache:
	default:
		errs = append(errs, fmt.Errorf("%sSTORAGE must be %q or %q, got %q", EnvPrefix, StorageSession, StorageCache, c.Storage))
	}

	if u, err := url.Parse(c.SiteURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("%sSITE_URL must be an absolute URL, got %q", EnvPrefix, c.SiteURL))
	}
	c.SiteURL = strings.TrimSuffix(c.SiteURL, "/")

	if c.SimulatedDelay < 0 {
		errs = append(errs, fmt.Errorf("%sSIMULATED_DELAY must not be negative", EnvPrefix))
	}
	if c.ContactRPS <= 0 || c.ContactBurst < 1 {
		errs = append(errs, fmt.Errorf("%sCONTACT_RPS and %sCONTACT_BURST must be positive", EnvPrefix, EnvPrefix))
	}

	if c.CatalogRefresh != "" {
		if _, err := cron.ParseStandard(c.CatalogRefresh); err != nil {
			errs = append(errs, fmt.Errorf("%sCATALOG_REFRESH: %w", EnvPrefix, err))
		}
	}

	if c.GeoIPDBPath != "" {
		if _, err := os.Stat(c.GeoIPDBPath); err != nil {
			slog.Warn("GeoIP database not readable, country prefill disabled", "path", c.GeoIPDBPath, "error", err)
			c.GeoIPDBPath = ""
		}
	}

	return errors.Join(errs...)
}

// hasMinimumEntropy checks that a secret mixes at least 3 character classes.
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
