// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/polysite/internal/basket"
	"github.com/olegiv/polysite/internal/catalog"
	"github.com/olegiv/polysite/internal/i18n"
	"github.com/olegiv/polysite/internal/metrics"
	"github.com/olegiv/polysite/internal/middleware"
	"github.com/olegiv/polysite/internal/model"
)

// ProductFinder looks up catalog products by id.
type ProductFinder interface {
	Product(ctx context.Context, id string) (model.Product, error)
}

// RFQHandler serves the quote-request basket.
type RFQHandler struct {
	store    StoreFunc
	products ProductFinder
	tr       i18n.Translator
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewRFQHandler creates a new basket handler.
func NewRFQHandler(store StoreFunc, products ProductFinder, tr i18n.Translator, m *metrics.Metrics, logger *slog.Logger) *RFQHandler {
	return &RFQHandler{store: store, products: products, tr: tr, metrics: m, logger: logger}
}

type addRequest struct {
	ID string `json:"id"`
}

func (h *RFQHandler) load(r *http.Request) *basket.Basket {
	return basket.Load(r.Context(), h.store(r), h.logger)
}

func writeBasket(w http.ResponseWriter, b *basket.Basket, extra map[string]any) {
	data := map[string]any{
		"items": b.Items(),
		"count": b.Len(),
	}
	for k, v := range extra {
		data[k] = v
	}
	writeJSONSuccess(w, data)
}

// List handles GET /api/rfq.
func (h *RFQHandler) List(w http.ResponseWriter, r *http.Request) {
	b := h.load(r)
	extra := map[string]any{}
	if b.IsEmpty() {
		extra["message"] = h.tr.T(middleware.GetLanguage(r).Locale.Code(), "rfq.empty", nil)
	}
	writeBasket(w, b, extra)
}

// Add handles POST /api/rfq with body {"id": "..."}. The line is copied
// from the catalog in the request language. Adding a product already in
// the basket is a no-op.
func (h *RFQHandler) Add(w http.ResponseWriter, r *http.Request) {
	code := middleware.GetLanguage(r).Locale.Code()

	var req addRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, h.tr.T(code, "common.bad_request", nil))
		return
	}
	id := strings.TrimSpace(req.ID)
	if id == "" {
		writeJSONError(w, http.StatusBadRequest, h.tr.T(code, "rfq.invalid_product", nil))
		return
	}

	p, err := h.products.Product(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, h.tr.T(code, "rfq.invalid_product", nil))
			return
		}
		h.logger.Error("failed to look up product", "product_id", id, "error", err)
		writeJSONError(w, http.StatusInternalServerError, h.tr.T(code, "common.server_error", nil))
		return
	}

	b := h.load(r)
	line := p.RFQ(code)
	added := b.Add(r.Context(), line)
	h.metrics.RecordBasketOp(metrics.OpAdd, added)

	key := "rfq.added"
	if !added {
		key = "rfq.already_added"
	}
	writeBasket(w, b, map[string]any{
		"added":   added,
		"message": h.tr.T(code, key, map[string]any{"name": line.Name}),
	})
}

// Remove handles DELETE /api/rfq/{id}. Removing an absent id is a no-op.
func (h *RFQHandler) Remove(w http.ResponseWriter, r *http.Request) {
	code := middleware.GetLanguage(r).Locale.Code()
	id := chi.URLParam(r, "id")

	b := h.load(r)
	removed := b.Remove(r.Context(), id)
	h.metrics.RecordBasketOp(metrics.OpRemove, removed)

	extra := map[string]any{"removed": removed}
	if removed {
		extra["message"] = h.tr.T(code, "rfq.removed", nil)
	}
	writeBasket(w, b, extra)
}

// Clear handles POST /api/rfq/clear. The stored record becomes an empty
// list.
func (h *RFQHandler) Clear(w http.ResponseWriter, r *http.Request) {
	b := h.load(r)
	changed := !b.IsEmpty()
	b.Clear(r.Context())
	h.metrics.RecordBasketOp(metrics.OpClear, changed)
	writeBasket(w, b, map[string]any{
		"message": h.tr.T(middleware.GetLanguage(r).Locale.Code(), "rfq.cleared", nil),
	})
}

// Reset handles POST /api/rfq/reset. The stored record is deleted.
func (h *RFQHandler) Reset(w http.ResponseWriter, r *http.Request) {
	b := basket.New(h.store(r), h.logger)
	b.ResetStorage(r.Context())
	h.metrics.RecordBasketOp(metrics.OpReset, true)
	writeBasket(w, b, map[string]any{
		"message": h.tr.T(middleware.GetLanguage(r).Locale.Code(), "rfq.reset", nil),
	})
}
