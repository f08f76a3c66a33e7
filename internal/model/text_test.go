// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "testing"

func TestTextIn(t *testing.T) {
	tests := []struct {
		name string
		text Text
		lang string
		want string
	}{
		{"english", T("Polyethylene", "البولي إيثيلين"), LangEnglish, "Polyethylene"},
		{"arabic", T("Polyethylene", "البولي إيثيلين"), LangArabic, "البولي إيثيلين"},
		{"arabic falls back", T("Polyethylene", ""), LangArabic, "Polyethylene"},
		{"unknown language", T("Polyethylene", "البولي إيثيلين"), "fr", "Polyethylene"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.text.In(tt.lang); got != tt.want {
				t.Errorf("In(%q) = %q, want %q", tt.lang, got, tt.want)
			}
		})
	}
}

func TestTextIsZero(t *testing.T) {
	if !(Text{}).IsZero() {
		t.Error("empty Text should be zero")
	}
	if T("", "نص").IsZero() {
		t.Error("Text with Arabic only should not be zero")
	}
}

func TestProductRFQ(t *testing.T) {
	p := Product{
		ID:    "p4",
		Slug:  "pp-raffia",
		Name:  T("PP Raffia H030", "بولي بروبيلين رافيا H030"),
		Type:  "PP",
		Grade: "MFI 3",
	}

	if got := p.Path(); got != "/products/pp-raffia" {
		t.Errorf("Path() = %q, want %q", got, "/products/pp-raffia")
	}

	line := p.RFQ(LangArabic)
	want := RFQProduct{ID: "p4", Name: "بولي بروبيلين رافيا H030", Type: "PP", Grade: "MFI 3"}
	if line != want {
		t.Errorf("RFQ(ar) = %+v, want %+v", line, want)
	}
}

func TestBlogPostPath(t *testing.T) {
	b := BlogPost{Slug: "pipe-grades-explained"}
	if got := b.Path(); got != "/resources/blog/pipe-grades-explained" {
		t.Errorf("Path() = %q, want %q", got, "/resources/blog/pipe-grades-explained")
	}
}
