// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package search builds the flat site search index from the catalog and
// ranks items against a free-text query.
package search

import (
	"sort"
	"strings"

	"github.com/olegiv/polysite/internal/locale"
	"github.com/olegiv/polysite/internal/model"
)

// MaxResults caps the number of results returned by Search.
const MaxResults = 10

// DescriptionSeparator joins the parts of a product description.
const DescriptionSeparator = " • "

// Item types.
const (
	TypeProduct  = "product"
	TypeResource = "resource"
)

// Item is one searchable entry.
type Item struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// Result is an item with its score.
type Result struct {
	Item
	Score int `json:"score"`
}

type resource struct {
	id          string
	title       model.Text
	description model.Text
	path        string
}

var resources = []resource{
	{"datasheets", model.T("Technical Datasheets", "النشرات الفنية"), model.T("Download grade datasheets and processing guides", "تحميل النشرات الفنية وأدلة المعالجة"), "/resources/datasheets"},
	{"blog", model.T("Blog", "المدونة"), model.T("Articles on resin selection and recycling", "مقالات حول اختيار الراتنج وإعادة التدوير"), "/resources/blog"},
	{"faq", model.T("FAQ", "الأسئلة الشائعة"), model.T("Ordering, delivery and quality questions", "أسئلة الطلب والتسليم والجودة"), "/resources/faq"},
	{"sustainability", model.T("Sustainability", "الاستدامة"), model.T("Recycled content and circular sourcing", "المحتوى المعاد تدويره والتوريد الدائري"), "/sustainability"},
	{"rfq", model.T("Request a Quote", "طلب عرض سعر"), model.T("Send grades and volumes for a quotation", "أرسل الدرجات والكميات للحصول على عرض سعر"), "/contact/rfq"},
}

// BuildIndex turns products into items for lang, followed by the static
// resource items. The result depends only on its inputs.
func BuildIndex(products []model.Product, lang locale.Language) []Item {
	code := string(lang)
	index := make([]Item, 0, len(products)+len(resources))

	for _, p := range products {
		index = append(index, Item{
			ID:          p.ID,
			Type:        TypeProduct,
			Title:       p.Name.In(code),
			Description: describe(p, code),
			URL:         locale.Localize(p.Path(), lang),
		})
	}

	for _, r := range resources {
		index = append(index, Item{
			ID:          r.id,
			Type:        TypeResource,
			Title:       r.title.In(code),
			Description: r.description.In(code),
			URL:         locale.Localize(r.path, lang),
		})
	}

	return index
}

// describe joins grade, category and applications, skipping empty parts.
func describe(p model.Product, lang string) string {
	parts := make([]string, 0, 2+len(p.Applications))
	if g := strings.TrimSpace(p.Grade); g != "" {
		parts = append(parts, g)
	}
	if c := p.Category.In(lang); c != "" {
		parts = append(parts, c)
	}
	for _, a := range p.Applications {
		if v := a.In(lang); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, DescriptionSeparator)
}

// Score weights.
const (
	titleWeight       = 2
	descriptionWeight = 1
)

// Search returns up to MaxResults items containing query, case-insensitively,
// in their title or description, ordered by descending score. Ties keep
// index order. A blank query matches nothing.
func Search(query string, index []Item) []Result {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var results []Result
	for _, item := range index {
		score := 0
		if strings.Contains(strings.ToLower(item.Title), q) {
			score += titleWeight
		}
		if strings.Contains(strings.ToLower(item.Description), q) {
			score += descriptionWeight
		}
		if score > 0 {
			results = append(results, Result{Item: item, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > MaxResults {
		results = results[:MaxResults]
	}
	return results
}
