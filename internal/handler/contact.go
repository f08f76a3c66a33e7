// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/olegiv/polysite/internal/basket"
	"github.com/olegiv/polysite/internal/contact"
	"github.com/olegiv/polysite/internal/geoip"
	"github.com/olegiv/polysite/internal/i18n"
	"github.com/olegiv/polysite/internal/metrics"
	"github.com/olegiv/polysite/internal/middleware"
)

// Dispatcher sends validated quote requests.
type Dispatcher interface {
	Submit(ctx context.Context, sub contact.Submission) (*contact.Receipt, error)
}

// ContactHandler serves the quote-request form.
type ContactHandler struct {
	store     StoreFunc
	submitter Dispatcher
	geo       contact.CountryLookup
	tr        i18n.Translator
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// NewContactHandler creates a new contact handler. geo may be nil, which
// disables country prefill.
func NewContactHandler(store StoreFunc, submitter Dispatcher, geo contact.CountryLookup, tr i18n.Translator, m *metrics.Metrics, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{
		store:     store,
		submitter: submitter,
		geo:       geo,
		tr:        tr,
		metrics:   m,
		logger:    logger,
	}
}

// contactRequest is the JSON body of POST /api/contact.
type contactRequest struct {
	contact.FormValues
	Privacy bool `json:"privacy"`
}

// Defaults handles GET /api/contact/defaults.
func (h *ContactHandler) Defaults(w http.ResponseWriter, r *http.Request) {
	code := middleware.GetLanguage(r).Locale.Code()
	writeJSONSuccess(w, map[string]any{
		"defaults": contact.DefaultValues(h.geo, middleware.ClientIP(r), code),
	})
}

// Submit handles POST /api/contact. Every rule is checked and reported in
// one 422 response. An accepted request snapshots the basket, is
// dispatched and then clears the basket.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	code := middleware.GetLanguage(r).Locale.Code()

	var req contactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.metrics.RecordContact(metrics.OutcomeInvalid)
		writeJSONError(w, http.StatusBadRequest, h.tr.T(code, "common.bad_request", nil))
		return
	}

	b := basket.Load(r.Context(), h.store(r), h.logger)
	result := contact.Validate(req.FormValues, b.IsEmpty(), req.Privacy)
	if !result.OK {
		h.metrics.RecordContact(metrics.OutcomeInvalid)
		messages := make(map[string]string, len(result.FieldErrors))
		for field, key := range result.FieldErrors {
			messages[field] = h.tr.T(code, key, nil)
		}
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"success":      false,
			"error":        h.tr.T(code, "contact.errors.invalid", nil),
			"field_errors": result.FieldErrors,
			"messages":     messages,
		})
		return
	}

	sub := contact.Submission{
		Values:    req.FormValues,
		Products:  b.Items(),
		Lang:      code,
		UserAgent: r.UserAgent(),
		Country:   h.country(r),
	}
	receipt, err := h.submitter.Submit(r.Context(), sub)
	if err != nil {
		h.metrics.RecordContact(metrics.OutcomeFailed)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			h.logger.Warn("quote request cancelled", "error", err)
		} else {
			h.logger.Error("failed to dispatch quote request", "error", err)
		}
		writeJSONError(w, http.StatusServiceUnavailable, h.tr.T(code, "contact.errors.unavailable", nil))
		return
	}

	b.Clear(r.Context())
	h.metrics.RecordContact(metrics.OutcomeAccepted)
	writeJSONSuccess(w, map[string]any{
		"reference": receipt.Reference,
		"message": h.tr.T(code, "contact.success", map[string]any{
			"name":      receipt.Values.Name,
			"reference": receipt.Reference,
		}),
		"receipt": receipt,
	})
}

func (h *ContactHandler) country(r *http.Request) string {
	if h.geo == nil {
		return ""
	}
	code := h.geo.Country(middleware.ClientIP(r))
	if code == geoip.Local {
		return ""
	}
	return code
}
