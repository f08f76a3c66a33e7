// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package metrics provides Prometheus metrics for the site.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "polysite"

// Basket operations.
const (
	OpAdd    = "add"
	OpRemove = "remove"
	OpClear  = "clear"
	OpReset  = "reset"
)

// Contact submission outcomes.
const (
	OutcomeAccepted = "accepted"
	OutcomeInvalid  = "invalid"
	OutcomeFailed   = "failed"
)

// Metrics holds the collectors registered on one registry.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	SearchesTotal    *prometheus.CounterVec
	SearchResults    prometheus.Histogram
	BasketOpsTotal   *prometheus.CounterVec
	ContactTotal     *prometheus.CounterVec
	RateLimitRejects prometheus.Counter
	CatalogRefreshes *prometheus.CounterVec
	CatalogProducts  prometheus.Gauge
}

// New creates the collectors on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Time taken to serve HTTP requests",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		SearchesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "searches_total",
				Help:      "Total number of search queries",
			},
			[]string{"lang", "outcome"},
		),
		SearchResults: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "search_results",
				Help:      "Number of results returned per search",
				Buckets:   []float64{0, 1, 2, 5, 10},
			},
		),
		BasketOpsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "basket_operations_total",
				Help:      "Total number of RFQ basket mutations",
			},
			[]string{"op", "changed"},
		),
		ContactTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "contact_submissions_total",
				Help:      "Total number of quote request submissions",
			},
			[]string{"outcome"},
		),
		RateLimitRejects: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limit_rejections_total",
				Help:      "Total number of requests rejected by the rate limiter",
			},
		),
		CatalogRefreshes: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "catalog_refreshes_total",
				Help:      "Total number of catalog refresh runs",
			},
			[]string{"status"},
		),
		CatalogProducts: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "catalog_products",
				Help:      "Number of products in the loaded catalog",
			},
		),
	}
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordSearch records one search and its result count.
func (m *Metrics) RecordSearch(lang string, results int) {
	outcome := "hit"
	if results == 0 {
		outcome = "empty"
	}
	m.SearchesTotal.WithLabelValues(lang, outcome).Inc()
	m.SearchResults.Observe(float64(results))
}

// RecordBasketOp records a basket mutation and whether it changed the basket.
func (m *Metrics) RecordBasketOp(op string, changed bool) {
	m.BasketOpsTotal.WithLabelValues(op, strconv.FormatBool(changed)).Inc()
}

// RecordContact records a submission outcome.
func (m *Metrics) RecordContact(outcome string) {
	m.ContactTotal.WithLabelValues(outcome).Inc()
}

// RecordRefresh records a catalog refresh and the resulting product count.
func (m *Metrics) RecordRefresh(err error, products int) {
	if err != nil {
		m.CatalogRefreshes.WithLabelValues("error").Inc()
		return
	}
	m.CatalogRefreshes.WithLabelValues("ok").Inc()
	m.CatalogProducts.Set(float64(products))
}

// Middleware records request counts and durations labelled by the chi
// route pattern, so path parameters do not explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.RequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.RequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
