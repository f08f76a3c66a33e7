// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"bytes"
	"html"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/olegiv/polysite/internal/locale"
	"github.com/olegiv/polysite/internal/model"
)

// DescriptionLength is the maximum length, in characters, of a derived
// meta description.
const DescriptionLength = 160

var markdown = goldmark.New()

// DerivedEntries maps the product and blog datasets to entries. It is a
// pure function of its inputs.
func DerivedEntries(products []model.Product, posts []model.BlogPost, site SiteConfig) []Entry {
	entries := make([]Entry, 0, len(products)+len(posts))
	for _, p := range products {
		entries = append(entries, productEntry(p, site))
	}
	for _, b := range posts {
		entries = append(entries, postEntry(b, site))
	}
	return entries
}

func productEntry(p model.Product, site SiteConfig) Entry {
	keywords := func(lang string) string {
		parts := []string{p.Type}
		if p.Grade != "" {
			parts = append(parts, p.Grade)
		}
		if c := p.Category.In(lang); c != "" {
			parts = append(parts, c)
		}
		for _, a := range p.Applications {
			if v := a.In(lang); v != "" {
				parts = append(parts, v)
			}
		}
		return strings.Join(parts, ", ")
	}

	schema := func(lang locale.Language) ProductSchema {
		code := string(lang)
		return ProductSchema{
			Context:     schemaContext,
			Type:        "Product",
			Name:        p.Name.In(code),
			Description: p.Description.In(code),
			SKU:         p.ID,
			Category:    p.Category.In(code),
			URL:         makeAbsoluteURL(locale.Localize(p.Path(), lang), site.URL),
			Brand:       &OrgSchema{Type: "Brand", Name: site.Name.In(code)},
		}
	}

	return Entry{
		Path:  p.Path(),
		Title: p.Name,
		Description: model.T(
			truncateText(p.Description.EN, DescriptionLength),
			truncateText(p.Description.AR, DescriptionLength),
		),
		Keywords: model.T(keywords(model.LangEnglish), keywords(model.LangArabic)),
		StructuredData: StructuredData{
			EN: schema(locale.English),
			AR: schema(locale.Arabic),
		},
	}
}

func postEntry(b model.BlogPost, site SiteConfig) Entry {
	describe := func(summary, body string) string {
		if s := strings.TrimSpace(summary); s != "" {
			return truncateText(s, DescriptionLength)
		}
		return Summarize(body, DescriptionLength)
	}
	desc := model.T(describe(b.Summary.EN, b.Body.EN), describe(b.Summary.AR, b.Body.AR))

	schema := func(lang locale.Language) BlogPostingSchema {
		code := string(lang)
		s := BlogPostingSchema{
			Context:          schemaContext,
			Type:             "BlogPosting",
			Headline:         b.Title.In(code),
			Description:      desc.In(code),
			InLanguage:       code,
			DatePublished:    formatDate(b.PublishedAt),
			Publisher:        Organization(site, lang),
			MainEntityOfPage: makeAbsoluteURL(locale.Localize(b.Path(), lang), site.URL),
		}
		s.Publisher.Context = ""
		if b.Author != "" {
			s.Author = &PersonSchema{Type: "Person", Name: b.Author}
		}
		return s
	}

	return Entry{
		Path:        b.Path(),
		Title:       b.Title,
		Description: desc,
		StructuredData: StructuredData{
			EN: schema(locale.English),
			AR: schema(locale.Arabic),
		},
	}
}

// Summarize renders markdown to HTML, strips the tags and truncates the
// text to maxLen characters at a word boundary.
func Summarize(md string, maxLen int) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return truncateText(stripHTML(md), maxLen)
	}
	return truncateText(stripHTML(buf.String()), maxLen)
}

// stripHTML removes HTML tags from a string.
func stripHTML(s string) string {
	var result strings.Builder
	inTag := false
	for _, r := range s {
		if r == '<' {
			inTag = true
			continue
		}
		if r == '>' {
			inTag = false
			result.WriteRune(' ')
			continue
		}
		if !inTag {
			result.WriteRune(r)
		}
	}
	return html.UnescapeString(strings.Join(strings.Fields(result.String()), " "))
}

// truncateText truncates text to maxLen characters at a word boundary.
// Length is counted in runes so Arabic text is never cut mid-character.
func truncateText(text string, maxLen int) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}

	truncated := string(runes[:maxLen])
	lastSpace := strings.LastIndex(truncated, " ")
	if lastSpace > len(truncated)/2 {
		truncated = truncated[:lastSpace]
	}

	return strings.TrimSpace(truncated) + "..."
}
