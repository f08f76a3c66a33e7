// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo resolves per-page, per-locale metadata from a static entry
// table and renders it into document head tags, robots.txt and sitemaps.
package seo

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync/atomic"

	"github.com/olegiv/polysite/internal/locale"
	"github.com/olegiv/polysite/internal/model"
)

// Wildcard is the path of the catch-all entry.
const Wildcard = "*"

// Table construction errors.
var (
	ErrNoWildcard        = errors.New("seo: table has no wildcard entry")
	ErrDuplicateWildcard = errors.New("seo: table has more than one wildcard entry")
	ErrDuplicatePath     = errors.New("seo: duplicate entry path")
)

// StructuredData holds JSON-LD for each language. A value may be a single
// object, a slice of objects or nil.
type StructuredData struct {
	EN any
	AR any
}

// In returns the value for lang. Arabic falls back to English when unset.
func (s StructuredData) In(lang locale.Language) any {
	if lang == locale.Arabic && s.AR != nil {
		return s.AR
	}
	return s.EN
}

// Entry is the metadata of one route.
type Entry struct {
	Path           string
	Title          model.Text
	Description    model.Text
	Keywords       model.Text
	StructuredData StructuredData
	NoIndex        bool
}

// Table is an immutable set of entries with exactly one wildcard.
type Table struct {
	byPath   map[string]Entry
	paths    []string
	wildcard Entry
}

// NewTable validates entries and builds the lookup table.
func NewTable(entries ...Entry) (*Table, error) {
	t := &Table{byPath: make(map[string]Entry, len(entries))}
	hasWildcard := false

	for _, e := range entries {
		if e.Path == Wildcard {
			if hasWildcard {
				return nil, ErrDuplicateWildcard
			}
			hasWildcard = true
			t.wildcard = e
			continue
		}
		if _, dup := t.byPath[e.Path]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePath, e.Path)
		}
		t.byPath[e.Path] = e
		t.paths = append(t.paths, e.Path)
	}

	if !hasWildcard {
		return nil, ErrNoWildcard
	}
	return t, nil
}

// Lookup returns the entry for an exact path.
func (t *Table) Lookup(path string) (Entry, bool) {
	e, ok := t.byPath[path]
	return e, ok
}

// Wildcard returns the catch-all entry.
func (t *Table) Wildcard() Entry {
	return t.wildcard
}

// Paths returns the concrete entry paths in declaration order.
func (t *Table) Paths() []string {
	return t.paths
}

// Entry returns the entry for path, or the wildcard entry.
func (t *Table) Entry(path string) Entry {
	if e, ok := t.byPath[path]; ok {
		return e
	}
	return t.wildcard
}

// Override carries caller-supplied values for the active language. Each
// non-empty field replaces the table value for that field alone.
type Override struct {
	Title          string
	Description    string
	Keywords       string
	StructuredData any
	NoIndex        bool
	NoFollow       bool
}

// SiteConfig contains site-wide settings for SEO.
type SiteConfig struct {
	Name           model.Text // brand, appended to titles
	URL            string     // absolute base URL without trailing slash
	DefaultOGImage string
	TwitterHandle  string
}

// Alternate is one hreflang link.
type Alternate struct {
	HrefLang string `json:"hreflang"`
	URL      string `json:"url"`
}

// Resolved is the final metadata for one page in one language.
type Resolved struct {
	Path           string      `json:"path"`
	Lang           string      `json:"lang"`
	Dir            string      `json:"dir"`
	Title          string      `json:"title"`
	Description    string      `json:"description,omitempty"`
	Keywords       string      `json:"keywords,omitempty"`
	Canonical      string      `json:"canonical"`
	Alternates     []Alternate `json:"alternates"`
	Robots         string      `json:"robots"`
	SiteName       string      `json:"site_name"`
	OGLocale       string      `json:"og_locale"`
	OGType         string      `json:"og_type"`
	OGImage        string      `json:"og_image,omitempty"`
	TwitterCard    string      `json:"twitter_card"`
	TwitterSite    string      `json:"twitter_site,omitempty"`
	StructuredData []any       `json:"structured_data,omitempty"`
}

// Resolver resolves metadata against a swappable table.
type Resolver struct {
	table atomic.Pointer[Table]
	site  SiteConfig
}

// NewResolver creates a resolver over table.
func NewResolver(table *Table, site SiteConfig) *Resolver {
	site.URL = strings.TrimSuffix(site.URL, "/")
	r := &Resolver{site: site}
	r.table.Store(table)
	return r
}

// SetTable replaces the table, e.g. after a catalog refresh.
func (r *Resolver) SetTable(t *Table) {
	r.table.Store(t)
}

// Table returns the current table.
func (r *Resolver) Table() *Table {
	return r.table.Load()
}

// Site returns the site configuration.
func (r *Resolver) Site() SiteConfig {
	return r.site
}

// Resolve builds metadata for a locale-neutral path. Each field is taken
// from the override, then the exact entry, then the wildcard entry; the
// title finally falls back to the site name.
func (r *Resolver) Resolve(path string, lang locale.Language, o *Override) Resolved {
	if path == "" {
		path = "/"
	}
	if o == nil {
		o = &Override{}
	}
	t := r.table.Load()
	exact, hasExact := t.Lookup(path)
	wild := t.Wildcard()
	code := string(lang)

	pick := func(override string, field func(Entry) model.Text) string {
		if override != "" {
			return override
		}
		if hasExact {
			if v := field(exact).In(code); v != "" {
				return v
			}
		}
		return field(wild).In(code)
	}

	brand := r.site.Name.In(code)
	title := pick(o.Title, func(e Entry) model.Text { return e.Title })
	if title == "" {
		title = brand
	}

	var data any
	switch {
	case o.StructuredData != nil:
		data = o.StructuredData
	case hasExact && exact.StructuredData.In(lang) != nil:
		data = exact.StructuredData.In(lang)
	default:
		data = wild.StructuredData.In(lang)
	}

	noIndex := o.NoIndex
	if !noIndex {
		if hasExact {
			noIndex = exact.NoIndex
		} else {
			noIndex = wild.NoIndex
		}
	}

	loc := locale.Of(lang)
	res := Resolved{
		Path:           path,
		Lang:           loc.Code(),
		Dir:            string(loc.Direction),
		Title:          brandTitle(title, brand),
		Description:    pick(o.Description, func(e Entry) model.Text { return e.Description }),
		Keywords:       pick(o.Keywords, func(e Entry) model.Text { return e.Keywords }),
		Canonical:      r.URL(path, lang),
		Alternates:     r.Alternates(path),
		Robots:         buildRobotsDirective(noIndex, o.NoFollow),
		SiteName:       brand,
		OGLocale:       loc.OpenGraph(),
		OGType:         "website",
		OGImage:        makeAbsoluteURL(r.site.DefaultOGImage, r.site.URL),
		TwitterCard:    "summary_large_image",
		TwitterSite:    r.site.TwitterHandle,
		StructuredData: normalizeStructuredData(data),
	}
	if strings.HasPrefix(path, "/resources/blog/") || strings.HasPrefix(path, "/products/") {
		res.OGType = "article"
	}
	return res
}

// URL returns the absolute localized URL for a locale-neutral path.
func (r *Resolver) URL(path string, lang locale.Language) string {
	return makeAbsoluteURL(locale.Localize(path, lang), r.site.URL)
}

// Alternates returns the hreflang links for path.
func (r *Resolver) Alternates(path string) []Alternate {
	en := r.URL(path, locale.English)
	return []Alternate{
		{HrefLang: string(locale.English), URL: en},
		{HrefLang: string(locale.Arabic), URL: r.URL(path, locale.Arabic)},
		{HrefLang: "x-default", URL: en},
	}
}

// brandTitle appends the brand unless the title already contains it.
func brandTitle(title, brand string) string {
	if brand == "" || strings.Contains(title, brand) {
		return title
	}
	if title == "" {
		return brand
	}
	return title + " | " + brand
}

// buildRobotsDirective creates the robots meta content from noindex/nofollow flags.
func buildRobotsDirective(noIndex, noFollow bool) string {
	var parts []string

	if noIndex {
		parts = append(parts, "noindex")
	} else {
		parts = append(parts, "index")
	}

	if noFollow {
		parts = append(parts, "nofollow")
	} else {
		parts = append(parts, "follow")
	}

	return strings.Join(parts, ",")
}

// normalizeStructuredData turns a single object or a slice of objects into
// a slice, dropping nil elements. nil yields nil.
func normalizeStructuredData(v any) []any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return []any{v}
	case reflect.Slice, reflect.Array:
		out := make([]any, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			item := rv.Index(i)
			if (item.Kind() == reflect.Interface || item.Kind() == reflect.Pointer || item.Kind() == reflect.Map) && item.IsNil() {
				continue
			}
			out = append(out, item.Interface())
		}
		if len(out) == 0 {
			return nil
		}
		return out
	default:
		return []any{v}
	}
}

// makeAbsoluteURL ensures a URL is absolute by prepending site URL if needed.
func makeAbsoluteURL(url, siteURL string) string {
	if url == "" {
		return ""
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	siteURL = strings.TrimSuffix(siteURL, "/")
	if !strings.HasPrefix(url, "/") {
		url = "/" + url
	}
	return siteURL + url
}
