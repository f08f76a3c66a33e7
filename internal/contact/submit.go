// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package contact

import (
	"context"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/mileusna/useragent"

	"github.com/olegiv/polysite/internal/model"
)

// DefaultDelay is the simulated dispatch latency.
const DefaultDelay = 300 * time.Millisecond

var textSanitizer = bluemonday.StrictPolicy()

// Submission is a validated request with the basket snapshot taken at
// submit time.
type Submission struct {
	Values    FormValues
	Products  []model.RFQProduct
	Lang      string
	UserAgent string
	Country   string
}

// Client summarizes the submitting browser.
type Client struct {
	Browser string `json:"browser"`
	OS      string `json:"os"`
	Device  string `json:"device"`
}

// Receipt is returned for an accepted submission.
type Receipt struct {
	Reference   string             `json:"reference"`
	ReceivedAt  time.Time          `json:"received_at"`
	Values      FormValues         `json:"values"`
	Products    []model.RFQProduct `json:"products"`
	Client      Client             `json:"client"`
	Country     string             `json:"country,omitempty"`
	ProductsNum int                `json:"products_count"`
}

// Submitter dispatches submissions to the simulated endpoint.
type Submitter struct {
	delay  time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// NewSubmitter creates a submitter. A negative delay means DefaultDelay.
func NewSubmitter(delay time.Duration, logger *slog.Logger) *Submitter {
	if delay < 0 {
		delay = DefaultDelay
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Submitter{delay: delay, logger: logger, now: time.Now}
}

// Submit sanitizes the free text, waits the simulated latency and logs the
// request. It returns ctx.Err() if ctx ends first.
func (s *Submitter) Submit(ctx context.Context, sub Submission) (*Receipt, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	products := make([]model.RFQProduct, len(sub.Products))
	copy(products, sub.Products)

	r := &Receipt{
		Reference:   uuid.NewString(),
		ReceivedAt:  s.now().UTC(),
		Values:      Sanitize(sub.Values),
		Products:    products,
		Client:      ParseClient(sub.UserAgent),
		Country:     sub.Country,
		ProductsNum: len(products),
	}

	s.logger.Info("quote request received",
		"reference", r.Reference,
		"company", r.Values.Company,
		"country", r.Values.Country,
		"products", r.ProductsNum,
		"lang", sub.Lang,
		"browser", r.Client.Browser,
		"device", r.Client.Device,
	)
	return r, nil
}

// Sanitize strips markup from every field and trims whitespace. The
// result is plain text, so entities are decoded back.
func Sanitize(v FormValues) FormValues {
	clean := func(s string) string {
		return strings.TrimSpace(html.UnescapeString(textSanitizer.Sanitize(s)))
	}
	return FormValues{
		Name:                clean(v.Name),
		Company:             clean(v.Company),
		Email:               strings.TrimSpace(v.Email),
		Country:             clean(v.Country),
		Quantity:            clean(v.Quantity),
		ProductsDescription: clean(v.ProductsDescription),
		Phone:               clean(v.Phone),
		Application:         clean(v.Application),
		Timeline:            clean(v.Timeline),
		Requirements:        clean(v.Requirements),
	}
}

// ParseClient extracts browser, OS and device class from a user agent.
func ParseClient(ua string) Client {
	parsed := useragent.Parse(ua)

	c := Client{Browser: parsed.Name, OS: parsed.OS}
	if c.Browser == "" {
		c.Browser = "Unknown"
	}
	if c.OS == "" {
		c.OS = "Unknown"
	}

	switch {
	case parsed.Mobile:
		c.Device = "mobile"
	case parsed.Tablet:
		c.Device = "tablet"
	case parsed.Bot:
		c.Device = "bot"
	default:
		c.Device = "desktop"
	}
	return c
}
