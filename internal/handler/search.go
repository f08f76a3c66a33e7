// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/olegiv/polysite/internal/i18n"
	"github.com/olegiv/polysite/internal/locale"
	"github.com/olegiv/polysite/internal/metrics"
	"github.com/olegiv/polysite/internal/middleware"
	"github.com/olegiv/polysite/internal/search"
)

// maxQueryLength bounds the search query, in runes.
const maxQueryLength = 100

// Searcher answers search queries.
type Searcher interface {
	Query(ctx context.Context, query string, lang locale.Language) ([]search.Result, error)
}

// SearchHandler serves the site search.
type SearchHandler struct {
	searcher Searcher
	tr       i18n.Translator
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(s Searcher, tr i18n.Translator, m *metrics.Metrics, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{searcher: s, tr: tr, metrics: m, logger: logger}
}

// Search handles GET /api/search?q=.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	loc := middleware.GetLanguage(r).Locale
	code := loc.Code()

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if runes := []rune(query); len(runes) > maxQueryLength {
		query = string(runes[:maxQueryLength])
	}

	results, err := h.searcher.Query(r.Context(), query, loc.Language)
	if err != nil {
		h.logger.Error("search failed", "query", query, "lang", code, "error", err)
		writeJSONError(w, http.StatusInternalServerError, h.tr.T(code, "common.server_error", nil))
		return
	}
	if results == nil {
		results = []search.Result{}
	}
	h.metrics.RecordSearch(code, len(results))

	data := map[string]any{
		"query":   query,
		"lang":    code,
		"count":   len(results),
		"results": results,
	}
	if query != "" {
		if len(results) == 0 {
			data["message"] = h.tr.T(code, "search.no_results", map[string]any{"query": query})
		} else {
			data["message"] = h.tr.T(code, "search.results_count", map[string]any{"count": len(results)})
		}
	}
	writeJSONSuccess(w, data)
}
