// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/olegiv/polysite/internal/cache"
	"github.com/olegiv/polysite/internal/logging"
	"github.com/olegiv/polysite/internal/scheduler"
	"github.com/olegiv/polysite/internal/version"
)

// checkTimeout bounds each dependency check.
const checkTimeout = 2 * time.Second

// Check statuses.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// JobLister lists the scheduled jobs.
type JobLister interface {
	List() []scheduler.JobInfo
}

// LoadTimer reports when the catalog snapshot was loaded.
type LoadTimer interface {
	Snapshotter
	LoadedAt() time.Time
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	db        *sql.DB
	cache     cache.Cacher
	backend   string
	catalog   LoadTimer
	recent    *logging.RecentHandler
	jobs      JobLister
	startTime time.Time
}

// HealthDeps are the dependencies reported on. Nil members are skipped.
type HealthDeps struct {
	DB           *sql.DB
	Cache        cache.Cacher
	CacheBackend string
	Catalog      LoadTimer
	Recent       *logging.RecentHandler
	Jobs         JobLister
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(deps HealthDeps) *HealthHandler {
	return &HealthHandler{
		db:        deps.DB,
		cache:     deps.Cache,
		backend:   deps.CacheBackend,
		catalog:   deps.Catalog,
		recent:    deps.Recent,
		jobs:      deps.Jobs,
		startTime: time.Now(),
	}
}

// StartTime returns when the handler (and application) was started.
func (h *HealthHandler) StartTime() time.Time {
	return h.startTime
}

// HealthStatus represents the overall health status.
type HealthStatus struct {
	Status    string              `json:"status"`
	Timestamp time.Time           `json:"timestamp"`
	Uptime    string              `json:"uptime"`
	Version   version.Info        `json:"version"`
	Checks    map[string]Check    `json:"checks"`
	Cache     *cache.Stats        `json:"cache,omitempty"`
	Jobs      []scheduler.JobInfo `json:"jobs,omitempty"`
	Recent    []logging.Entry     `json:"recent_problems,omitempty"`
	System    *SystemInfo         `json:"system,omitempty"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// SystemInfo contains system-level information.
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutines"`
	NumCPU       int    `json:"num_cpus"`
	MemAlloc     string `json:"mem_alloc"`
	MemSys       string `json:"mem_sys"`
}

// Health handles GET /healthz. Any unhealthy check turns the response into
// a 503. ?verbose=true adds runtime information.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]Check)
	if h.db != nil {
		checks["database"] = h.checkDatabase(r.Context())
	}
	if h.cache != nil {
		checks["cache"] = h.checkCache(r.Context())
	}
	if h.catalog != nil {
		checks["catalog"] = h.checkCatalog()
	}

	overall := StatusHealthy
	for _, c := range checks {
		if c.Status == StatusUnhealthy {
			overall = StatusUnhealthy
			break
		}
		if c.Status == StatusDegraded {
			overall = StatusDegraded
		}
	}

	status := HealthStatus{
		Status:    overall,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   version.Current(),
		Checks:    checks,
	}
	if sp, ok := h.cache.(cache.StatsProvider); ok {
		stats := sp.Stats()
		status.Cache = &stats
	}
	if h.jobs != nil {
		status.Jobs = h.jobs.List()
	}
	if h.recent != nil {
		status.Recent = h.recent.Recent()
	}
	if r.URL.Query().Get("verbose") == "true" {
		status.System = getSystemInfo()
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if overall == StatusUnhealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	_ = json.NewEncoder(w).Encode(status)
}

// Liveness handles GET /healthz/live - simple liveness check.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "alive",
	})
}

// checkDatabase verifies session database connectivity.
func (h *HealthHandler) checkDatabase(ctx context.Context) Check {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	start := time.Now()
	err := h.db.PingContext(ctx)
	latency := time.Since(start)

	if err != nil {
		return Check{Status: StatusUnhealthy, Message: err.Error(), Latency: latency.String()}
	}
	return Check{Status: StatusHealthy, Message: "Connected", Latency: latency.String()}
}

// checkCache round-trips a probe key. A failing cache degrades basket
// persistence but the site keeps serving.
func (h *HealthHandler) checkCache(ctx context.Context) Check {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	start := time.Now()
	const probe = "healthz:probe"
	err := h.cache.Set(ctx, probe, []byte("1"), time.Minute)
	if err == nil {
		_, err = h.cache.Get(ctx, probe)
	}
	latency := time.Since(start)

	if err != nil {
		return Check{Status: StatusDegraded, Message: h.backend + ": " + err.Error(), Latency: latency.String()}
	}
	return Check{Status: StatusHealthy, Message: h.backend, Latency: latency.String()}
}

func (h *HealthHandler) checkCatalog() Check {
	ds := h.catalog.Snapshot()
	if ds == nil || len(ds.Products) == 0 {
		return Check{Status: StatusDegraded, Message: "catalog is empty"}
	}
	return Check{
		Status:  StatusHealthy,
		Message: fmt.Sprintf("%d products, %d posts, loaded %s", len(ds.Products), len(ds.Posts), h.catalog.LoadedAt().UTC().Format(time.RFC3339)),
	}
}

// getSystemInfo returns system-level metrics.
func getSystemInfo() *SystemInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return &SystemInfo{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     formatBytes(m.Alloc),
		MemSys:       formatBytes(m.Sys),
	}
}

// formatBytes converts bytes to a human-readable string.
func formatBytes(bytes uint64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
