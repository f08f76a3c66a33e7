// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/olegiv/polysite/internal/locale"
	"github.com/olegiv/polysite/internal/model"
)

func TestDerivedEntries(t *testing.T) {
	products := []model.Product{{
		ID:           "p1",
		Slug:         "rhdpe-bm",
		Name:         model.T("rHDPE BM", "rHDPE قولبة"),
		Type:         "HDPE",
		Grade:        "MFI 0.35",
		Category:     model.T("Recycled", "معاد تدويره"),
		Applications: []model.Text{model.T("Bottles", "عبوات")},
		Description:  model.T("Recycled HDPE pellets.", "حبيبات HDPE."),
	}}
	posts := []model.BlogPost{{
		Slug:        "guide",
		Title:       model.T("Guide", "دليل"),
		Body:        model.T("# Heading\n\nSome **bold** text & more.", "نص *عربي* هنا."),
		Author:      "Team",
		PublishedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}}

	entries := DerivedEntries(products, posts, testSite)
	if len(entries) != 2 {
		t.Fatalf("DerivedEntries() returned %d entries, want 2", len(entries))
	}

	p := entries[0]
	if p.Path != "/products/rhdpe-bm" {
		t.Errorf("product Path = %q", p.Path)
	}
	if p.Keywords.EN != "HDPE, MFI 0.35, Recycled, Bottles" {
		t.Errorf("product Keywords.EN = %q", p.Keywords.EN)
	}
	schema, ok := p.StructuredData.In(locale.Arabic).(ProductSchema)
	if !ok {
		t.Fatalf("product structured data is %T", p.StructuredData.In(locale.Arabic))
	}
	if schema.URL != "https://polynova.example/ar/products/rhdpe-bm" || schema.Name != "rHDPE قولبة" {
		t.Errorf("product schema = %+v", schema)
	}

	b := entries[1]
	if b.Path != "/resources/blog/guide" {
		t.Errorf("post Path = %q", b.Path)
	}
	if b.Description.EN != "Heading Some bold text & more." {
		t.Errorf("post Description.EN = %q", b.Description.EN)
	}
	if b.Description.AR != "نص عربي هنا." {
		t.Errorf("post Description.AR = %q", b.Description.AR)
	}
	post, ok := b.StructuredData.In(locale.English).(BlogPostingSchema)
	if !ok {
		t.Fatalf("post structured data is %T", b.StructuredData.In(locale.English))
	}
	if post.DatePublished != "2025-03-01T00:00:00Z" || post.Author == nil || post.Author.Name != "Team" {
		t.Errorf("post schema = %+v", post)
	}
}

func TestDerivedEntriesPreferSummary(t *testing.T) {
	entries := DerivedEntries(nil, []model.BlogPost{{
		Slug:    "x",
		Summary: model.T("Short summary", ""),
		Body:    model.T("Long body", "نص"),
	}}, testSite)

	if got := entries[0].Description.EN; got != "Short summary" {
		t.Errorf("Description.EN = %q, want summary", got)
	}
	if got := entries[0].Description.AR; got != "نص" {
		t.Errorf("Description.AR = %q, want body summary", got)
	}
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		maxLen int
		want   string
	}{
		{"short", "hello world", 20, "hello world"},
		{"word boundary", "the quick brown fox jumps", 12, "the quick..."},
		{"trims", "  padded  ", 20, "padded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateText(tt.text, tt.maxLen); got != tt.want {
				t.Errorf("truncateText(%q, %d) = %q, want %q", tt.text, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestTruncateTextArabicKeepsRunes(t *testing.T) {
	text := strings.Repeat("بوليمر ", 40)
	got := truncateText(text, 50)

	if !utf8.ValidString(got) {
		t.Fatalf("truncateText produced invalid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(strings.TrimSuffix(got, "...")); n > 50 {
		t.Errorf("truncated to %d runes, want <= 50", n)
	}
}

func TestStripHTML(t *testing.T) {
	got := stripHTML("<p>Hello <strong>world</strong> &amp; co</p>")
	if got != "Hello world & co" {
		t.Errorf("stripHTML() = %q", got)
	}
}
