// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"
	"testing"
	"time"

	"github.com/olegiv/polysite/internal/model"
)

func TestSitemapBuilderAddPaths(t *testing.T) {
	b := NewSitemapBuilder(testResolver(t))
	b.AddPaths([]string{"/", "/about", "/about", "/private", ""})

	// "/" and "/about" in two locales; duplicate, noindex and empty skipped
	if b.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", b.Len())
	}
	if b.urls[0].Priority != "1.0" || b.urls[0].ChangeFreq != ChangeFreqDaily {
		t.Errorf("home entry = %+v", b.urls[0])
	}
	if b.urls[1].Loc != "https://polynova.example/ar" {
		t.Errorf("arabic home Loc = %q", b.urls[1].Loc)
	}
	if len(b.urls[2].Links) != 3 {
		t.Errorf("expected 3 alternates, got %+v", b.urls[2].Links)
	}
}

func TestSitemapBuilderContent(t *testing.T) {
	b := NewSitemapBuilder(testResolver(t))
	b.AddProducts([]model.Product{{Slug: "rhdpe"}})
	b.AddPosts([]model.BlogPost{{Slug: "guide", PublishedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)}})

	data, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	xml := string(data)

	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`,
		`xmlns:xhtml="http://www.w3.org/1999/xhtml"`,
		"<loc>https://polynova.example/products/rhdpe</loc>",
		"<loc>https://polynova.example/ar/resources/blog/guide</loc>",
		"<lastmod>2025-01-02T03:04:05Z</lastmod>",
		`hreflang="x-default"`,
	} {
		if !strings.Contains(xml, want) {
			t.Errorf("Build() should contain %q", want)
		}
	}
}

func TestSitemapBuilderBuildEmpty(t *testing.T) {
	data, err := NewSitemapBuilder(testResolver(t)).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !strings.Contains(string(data), "<urlset") {
		t.Error("Build() should contain urlset element")
	}
}
