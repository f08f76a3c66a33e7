// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/xml"
	"time"

	"github.com/olegiv/polysite/internal/locale"
	"github.com/olegiv/polysite/internal/model"
)

// Sitemap XML namespaces.
const (
	XMLNamespace   = "http://www.sitemaps.org/schemas/sitemap/0.9"
	XHTMLNamespace = "http://www.w3.org/1999/xhtml"
)

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Change frequency values used by the site.
const (
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
)

// SitemapLink is an xhtml:link alternate for one language.
type SitemapLink struct {
	Rel      string `xml:"rel,attr"`
	HrefLang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

// SitemapURL represents a single URL entry in the sitemap.
type SitemapURL struct {
	Loc        string        `xml:"loc"`
	LastMod    string        `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq    `xml:"changefreq,omitempty"`
	Priority   string        `xml:"priority,omitempty"`
	Links      []SitemapLink `xml:"xhtml:link"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	XHTML   string       `xml:"xmlns:xhtml,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapBuilder builds sitemap XML with one URL per locale for every path.
type SitemapBuilder struct {
	resolver *Resolver
	seen     map[string]bool
	urls     []SitemapURL
}

// NewSitemapBuilder creates a new sitemap builder.
func NewSitemapBuilder(resolver *Resolver) *SitemapBuilder {
	return &SitemapBuilder{
		resolver: resolver,
		seen:     make(map[string]bool),
	}
}

// AddPath adds path in both locales. Paths already added and paths whose
// entry is marked NoIndex are skipped.
func (b *SitemapBuilder) AddPath(path string, lastMod time.Time, freq ChangeFreq, priority string) {
	if path == "" || b.seen[path] {
		return
	}
	b.seen[path] = true
	if e, ok := b.resolver.Table().Lookup(path); ok && e.NoIndex {
		return
	}

	links := make([]SitemapLink, 0, 3)
	for _, alt := range b.resolver.Alternates(path) {
		links = append(links, SitemapLink{Rel: "alternate", HrefLang: alt.HrefLang, Href: alt.URL})
	}

	for _, lang := range []locale.Language{locale.English, locale.Arabic} {
		u := SitemapURL{
			Loc:        b.resolver.URL(path, lang),
			ChangeFreq: freq,
			Priority:   priority,
			Links:      links,
		}
		if !lastMod.IsZero() {
			u.LastMod = lastMod.Format(time.RFC3339)
		}
		b.urls = append(b.urls, u)
	}
}

// AddPaths adds static paths. The home page gets top priority.
func (b *SitemapBuilder) AddPaths(paths []string) {
	for _, p := range paths {
		if p == "/" {
			b.AddPath(p, time.Time{}, ChangeFreqDaily, "1.0")
			continue
		}
		b.AddPath(p, time.Time{}, ChangeFreqWeekly, "0.8")
	}
}

// AddProducts adds product pages.
func (b *SitemapBuilder) AddProducts(products []model.Product) {
	for _, p := range products {
		b.AddPath(p.Path(), time.Time{}, ChangeFreqWeekly, "0.7")
	}
}

// AddPosts adds blog articles.
func (b *SitemapBuilder) AddPosts(posts []model.BlogPost) {
	for _, p := range posts {
		b.AddPath(p.Path(), p.PublishedAt, ChangeFreqMonthly, "0.6")
	}
}

// Len returns the number of URL entries.
func (b *SitemapBuilder) Len() int {
	return len(b.urls)
}

// Build generates the sitemap XML.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS: XMLNamespace,
		XHTML: XHTMLNamespace,
		URLs:  b.urls,
	}

	output := []byte(xml.Header)
	xmlBytes, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(output, xmlBytes...), nil
}
