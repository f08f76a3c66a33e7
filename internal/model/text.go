// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model contains the bilingual domain shapes shared across the site.
package model

// Language codes used by bilingual values.
const (
	LangEnglish = "en"
	LangArabic  = "ar"
)

// Text is a string available in English and Arabic.
type Text struct {
	EN string `json:"en" yaml:"en"`
	AR string `json:"ar" yaml:"ar"`
}

// In returns the value for lang. Arabic falls back to English when the
// Arabic value is empty; any other language gets English.
func (t Text) In(lang string) string {
	if lang == LangArabic && t.AR != "" {
		return t.AR
	}
	return t.EN
}

// IsZero reports whether both values are empty.
func (t Text) IsZero() bool {
	return t.EN == "" && t.AR == ""
}

// T is shorthand for building a Text literal.
func T(en, ar string) Text {
	return Text{EN: en, AR: ar}
}
