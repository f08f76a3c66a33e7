// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package contact

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/polysite/internal/geoip"
	"github.com/olegiv/polysite/internal/model"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSubmit(t *testing.T) {
	s := NewSubmitter(0, quietLogger())
	products := []model.RFQProduct{{ID: "p1", Name: "rHDPE", Type: "HDPE"}}

	v := validForm()
	v.Requirements = "<b>Food contact</b> approval <script>alert(1)</script>"
	r, err := s.Submit(context.Background(), Submission{
		Values:    v,
		Products:  products,
		Lang:      "en",
		UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15",
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if _, err := uuid.Parse(r.Reference); err != nil {
		t.Errorf("Reference %q is not a uuid: %v", r.Reference, err)
	}
	if r.Values.Requirements != "Food contact approval" {
		t.Errorf("Requirements = %q, want sanitized text", r.Values.Requirements)
	}
	if r.ProductsNum != 1 || len(r.Products) != 1 {
		t.Errorf("products = %d, want 1", r.ProductsNum)
	}
	if r.Client.Device != "desktop" {
		t.Errorf("Client.Device = %q, want desktop", r.Client.Device)
	}

	// the receipt holds a snapshot
	products[0].Name = "changed"
	if r.Products[0].Name != "rHDPE" {
		t.Error("receipt products alias the caller's slice")
	}
}

func TestSubmit_ContextCancelled(t *testing.T) {
	s := NewSubmitter(time.Hour, quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Submit(ctx, Submission{Values: validForm()})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Submit() error = %v, want context.Canceled", err)
	}
}

func TestNewSubmitterDefaults(t *testing.T) {
	s := NewSubmitter(-1, nil)
	if s.delay != DefaultDelay {
		t.Errorf("delay = %v, want %v", s.delay, DefaultDelay)
	}
	if s.logger == nil {
		t.Error("logger is nil")
	}
}

func TestSanitizeKeepsPlainText(t *testing.T) {
	got := Sanitize(FormValues{Company: "  R&D Plastics  ", Email: " a@b.co "})
	if got.Company != "R&D Plastics" {
		t.Errorf("Company = %q, want %q", got.Company, "R&D Plastics")
	}
	if got.Email != "a@b.co" {
		t.Errorf("Email = %q, want %q", got.Email, "a@b.co")
	}
}

func TestParseClient(t *testing.T) {
	tests := []struct {
		ua     string
		device string
	}{
		{"", "desktop"},
		{"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1", "mobile"},
		{"Googlebot/2.1 (+http://www.google.com/bot.html)", "bot"},
	}
	for _, tt := range tests {
		if got := ParseClient(tt.ua); got.Device != tt.device {
			t.Errorf("ParseClient(%q).Device = %q, want %q", tt.ua, got.Device, tt.device)
		}
	}
	if got := ParseClient(""); got.Browser != "Unknown" || got.OS != "Unknown" {
		t.Errorf("ParseClient(\"\") = %+v, want Unknown browser and OS", got)
	}
}

type fixedLookup string

func (f fixedLookup) Country(string) string { return string(f) }

func TestDefaultValues(t *testing.T) {
	tests := []struct {
		name   string
		lookup CountryLookup
		lang   string
		want   Defaults
	}{
		{"no lookup", nil, "en", Defaults{}},
		{"local", fixedLookup(geoip.Local), "en", Defaults{}},
		{"unknown", fixedLookup(""), "en", Defaults{}},
		{"english", fixedLookup("AE"), "en", Defaults{Country: "United Arab Emirates", CountryCode: "AE"}},
		{"arabic", fixedLookup("QA"), "ar", Defaults{Country: "قطر", CountryCode: "QA"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultValues(tt.lookup, "203.0.113.5", tt.lang); got != tt.want {
				t.Errorf("DefaultValues() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
