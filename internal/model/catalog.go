// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Product is a catalog entry from the read-only dataset.
type Product struct {
	ID           string `yaml:"id"`
	Slug         string `yaml:"slug"`
	Name         Text   `yaml:"name"`
	Type         string `yaml:"type"`
	Grade        string `yaml:"grade"`
	Category     Text   `yaml:"category"`
	Applications []Text `yaml:"applications"`
	Description  Text   `yaml:"description"`
}

// Path returns the locale-neutral product page path.
func (p Product) Path() string {
	return "/products/" + p.Slug
}

// RFQ returns the denormalized basket line for this product.
func (p Product) RFQ(lang string) RFQProduct {
	return RFQProduct{
		ID:    p.ID,
		Name:  p.Name.In(lang),
		Type:  p.Type,
		Grade: p.Grade,
	}
}

// BlogPost is an article from the read-only dataset. Body is markdown.
type BlogPost struct {
	Slug        string    `yaml:"slug"`
	Title       Text      `yaml:"title"`
	Summary     Text      `yaml:"summary"`
	Body        Text      `yaml:"body"`
	Author      string    `yaml:"author"`
	PublishedAt time.Time `yaml:"published_at"`
}

// Path returns the locale-neutral article path.
func (b BlogPost) Path() string {
	return "/resources/blog/" + b.Slug
}
