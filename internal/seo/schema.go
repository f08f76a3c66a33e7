// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/json"
	"html/template"
	"time"

	"github.com/olegiv/polysite/internal/locale"
	"github.com/olegiv/polysite/internal/nav"
)

const schemaContext = "https://schema.org"

// OrgSchema represents JSON-LD Organization structured data.
type OrgSchema struct {
	Context string       `json:"@context,omitempty"`
	Type    string       `json:"@type"`
	Name    string       `json:"name"`
	URL     string       `json:"url,omitempty"`
	Logo    *ImageSchema `json:"logo,omitempty"`
}

// ImageSchema represents JSON-LD ImageObject structured data.
type ImageSchema struct {
	Type string `json:"@type"`
	URL  string `json:"url"`
}

// PersonSchema represents JSON-LD Person structured data.
type PersonSchema struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// WebSiteSchema represents JSON-LD WebSite structured data for the home page.
type WebSiteSchema struct {
	Context      string        `json:"@context"`
	Type         string        `json:"@type"`
	Name         string        `json:"name"`
	URL          string        `json:"url"`
	InLanguage   string        `json:"inLanguage,omitempty"`
	SearchAction *SearchAction `json:"potentialAction,omitempty"`
}

// SearchAction represents JSON-LD SearchAction for site search.
type SearchAction struct {
	Type       string `json:"@type"`
	Target     string `json:"target"`
	QueryInput string `json:"query-input"`
}

// ProductSchema represents JSON-LD Product structured data.
type ProductSchema struct {
	Context     string     `json:"@context"`
	Type        string     `json:"@type"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	SKU         string     `json:"sku,omitempty"`
	Category    string     `json:"category,omitempty"`
	URL         string     `json:"url,omitempty"`
	Brand       *OrgSchema `json:"brand,omitempty"`
}

// BlogPostingSchema represents JSON-LD BlogPosting structured data.
type BlogPostingSchema struct {
	Context          string        `json:"@context"`
	Type             string        `json:"@type"`
	Headline         string        `json:"headline"`
	Description      string        `json:"description,omitempty"`
	InLanguage       string        `json:"inLanguage,omitempty"`
	DatePublished    string        `json:"datePublished,omitempty"`
	Author           *PersonSchema `json:"author,omitempty"`
	Publisher        *OrgSchema    `json:"publisher,omitempty"`
	MainEntityOfPage string        `json:"mainEntityOfPage,omitempty"`
}

// BreadcrumbSchema represents JSON-LD BreadcrumbList structured data.
type BreadcrumbSchema struct {
	Context  string           `json:"@context"`
	Type     string           `json:"@type"`
	ItemList []BreadcrumbItem `json:"itemListElement"`
}

// BreadcrumbItem represents a single breadcrumb item.
type BreadcrumbItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item,omitempty"`
}

// Organization builds the publisher schema for lang.
func Organization(site SiteConfig, lang locale.Language) *OrgSchema {
	org := &OrgSchema{
		Context: schemaContext,
		Type:    "Organization",
		Name:    site.Name.In(string(lang)),
		URL:     site.URL,
	}
	if site.DefaultOGImage != "" {
		org.Logo = &ImageSchema{
			Type: "ImageObject",
			URL:  makeAbsoluteURL(site.DefaultOGImage, site.URL),
		}
	}
	return org
}

// WebSite builds the home page schema with a site search action.
func WebSite(site SiteConfig, lang locale.Language) WebSiteSchema {
	base := makeAbsoluteURL(locale.Localize("/", lang), site.URL)
	return WebSiteSchema{
		Context:    schemaContext,
		Type:       "WebSite",
		Name:       site.Name.In(string(lang)),
		URL:        base,
		InLanguage: string(lang),
		SearchAction: &SearchAction{
			Type:       "SearchAction",
			Target:     base + "/search?q={search_term_string}",
			QueryInput: "required name=search_term_string",
		},
	}
}

// BreadcrumbList builds breadcrumb structured data from rendered crumbs.
// Crumb URLs are made absolute against siteURL.
func BreadcrumbList(crumbs []nav.Crumb, siteURL string) *BreadcrumbSchema {
	if len(crumbs) == 0 {
		return nil
	}
	list := &BreadcrumbSchema{
		Context:  schemaContext,
		Type:     "BreadcrumbList",
		ItemList: make([]BreadcrumbItem, 0, len(crumbs)),
	}
	for i, c := range crumbs {
		list.ItemList = append(list.ItemList, BreadcrumbItem{
			Type:     "ListItem",
			Position: i + 1,
			Name:     c.Label,
			Item:     makeAbsoluteURL(c.URL, siteURL),
		})
	}
	return list
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// JSONLD serializes the normalized structured data as one JSON array. It
// returns an empty value when there is nothing to emit.
func (r Resolved) JSONLD() template.JS {
	if len(r.StructuredData) == 0 {
		return ""
	}
	return marshalJSONLD(r.StructuredData)
}

// JSONLDBlocks serializes each structured data object on its own, one per
// script tag.
func (r Resolved) JSONLDBlocks() []template.JS {
	blocks := make([]template.JS, 0, len(r.StructuredData))
	for _, v := range r.StructuredData {
		if js := marshalJSONLD(v); js != "" {
			blocks = append(blocks, js)
		}
	}
	return blocks
}

// marshalJSONLD marshals structured data to JSON-LD script tag content.
func marshalJSONLD(v any) template.JS {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return template.JS(data)
}
