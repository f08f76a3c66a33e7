// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/olegiv/polysite/internal/cache"
	"github.com/olegiv/polysite/internal/catalog"
	"github.com/olegiv/polysite/internal/contact"
	"github.com/olegiv/polysite/internal/i18n"
	"github.com/olegiv/polysite/internal/metrics"
	"github.com/olegiv/polysite/internal/middleware"
	"github.com/olegiv/polysite/internal/model"
	"github.com/olegiv/polysite/internal/nav"
	"github.com/olegiv/polysite/internal/search"
	"github.com/olegiv/polysite/internal/seo"
	"github.com/olegiv/polysite/internal/storage"
)

const testSiteURL = "https://polynova.example"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testEnv is a fully wired site over the embedded catalog with an
// in-memory basket store.
type testEnv struct {
	handler http.Handler
	store   *storage.Memory
	metrics *metrics.Metrics
	cache   *cache.MemoryCache
}

type envOption func(*RouterConfig)

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	logger := testLogger()

	src, err := catalog.NewSource(nil, 0, logger)
	require.NoError(t, err)

	site := seo.SiteConfig{Name: model.T("PolyNova", "بولي نوفا"), URL: testSiteURL}
	ds := src.Snapshot()
	table, err := seo.BuildTable(site, ds.Products, ds.Posts)
	require.NoError(t, err)
	resolver := seo.NewResolver(table, site)

	mc := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Hour})
	t.Cleanup(func() { _ = mc.Close() })

	tr := i18n.New(logger)
	m := metrics.New()
	mem := storage.NewMemory()
	stores := MemoryStore(mem)

	cfg := RouterConfig{
		Site:    NewSiteHandler(nav.Default(), resolver, src, tr, false, logger),
		Search:  NewSearchHandler(search.NewService(src, mc, time.Hour, logger), tr, m, logger),
		RFQ:     NewRFQHandler(stores, src, tr, m, logger),
		Contact: NewContactHandler(stores, contact.NewSubmitter(0, logger), nil, tr, m, logger),
		Health: NewHealthHandler(HealthDeps{
			Cache:        mc,
			CacheBackend: cache.BackendMemory,
			Catalog:      src,
		}),
		Metrics:  m,
		Security: middleware.DefaultSecurityHeadersConfig(true),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &testEnv{handler: NewRouter(cfg), store: mem, metrics: m, cache: mc}
}

func (e *testEnv) do(t *testing.T, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

func storedBasket(t *testing.T, mem *storage.Memory) (string, bool) {
	t.Helper()
	raw, ok := mem.Raw("rfq_products_v1")
	return string(raw), ok
}
