// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util holds small helpers shared by the catalog and handlers.
package util

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

// nonSlug matches every run of characters that cannot appear in a slug.
var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a product or article name to a URL slug. Non-Latin
// scripts, Arabic included, are transliterated to ASCII first.
func Slugify(s string) string {
	ascii := strings.ToLower(unidecode.Unidecode(s))
	return strings.Trim(nonSlug.ReplaceAllString(ascii, "-"), "-")
}

// IsValidSlug reports whether s is lowercase ASCII words joined by single
// hyphens.
func IsValidSlug(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}
	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	return !strings.Contains(s, "--")
}
