// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package locale resolves the active site language and text direction from
// language tags, URL prefixes and browser negotiation.
package locale

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/olegiv/polysite/internal/model"
)

// Language is a supported site language code.
type Language string

// Supported languages.
const (
	English Language = model.LangEnglish
	Arabic  Language = model.LangArabic
)

// Direction is the text direction of a language.
type Direction string

// Text directions.
const (
	LTR Direction = "ltr"
	RTL Direction = "rtl"
)

// DefaultLanguage is used when no tag is given.
const DefaultLanguage = English

// PreferenceCookie stores the last language the visitor picked.
const PreferenceCookie = "lang"

// ArabicPrefix is the URL segment that namespaces Arabic routes.
const ArabicPrefix = "/ar"

// Locale is a resolved language with its direction.
type Locale struct {
	Language  Language  `json:"language"`
	Direction Direction `json:"direction"`
}

// Code returns the two-letter language code.
func (l Locale) Code() string {
	return string(l.Language)
}

// IsRTL reports whether the locale is right-to-left.
func (l Locale) IsRTL() bool {
	return l.Direction == RTL
}

// OpenGraph returns the og:locale value.
func (l Locale) OpenGraph() string {
	if l.Language == Arabic {
		return "ar_AE"
	}
	return "en_US"
}

var (
	englishLocale = Locale{Language: English, Direction: LTR}
	arabicLocale  = Locale{Language: Arabic, Direction: RTL}
)

// Of returns the locale for a supported language.
func Of(lang Language) Locale {
	if lang == Arabic {
		return arabicLocale
	}
	return englishLocale
}

// Resolve maps a raw language tag to a locale. Any tag starting with "ar"
// (case-insensitive, e.g. "ar-AE") is Arabic; everything else, including an
// empty or missing tag, is English. With no argument the default language
// is used.
func Resolve(tag ...string) Locale {
	raw := string(DefaultLanguage)
	if len(tag) > 0 {
		raw = tag[0]
	}
	if strings.HasPrefix(strings.ToLower(raw), "ar") {
		return arabicLocale
	}
	return englishLocale
}

// FromPath returns Arabic when the first path segment is exactly "ar" and
// English for every other path.
func FromPath(path string) Locale {
	_, lang := StripPrefix(path)
	return Of(lang)
}

// StripPrefix removes the Arabic segment from a path and returns the
// locale-neutral path with the language it carried.
func StripPrefix(path string) (string, Language) {
	if path == ArabicPrefix || path == ArabicPrefix+"/" {
		return "/", Arabic
	}
	if strings.HasPrefix(path, ArabicPrefix+"/") {
		return path[len(ArabicPrefix):], Arabic
	}
	if path == "" {
		return "/", English
	}
	return path, English
}

// Localize applies the language prefix to a locale-neutral path.
func Localize(path string, lang Language) string {
	if path == "" {
		path = "/"
	}
	if lang != Arabic {
		return path
	}
	if path == "/" {
		return ArabicPrefix
	}
	return ArabicPrefix + path
}

var (
	supportedTags = []language.Tag{language.English, language.Arabic}
	matcher       = language.NewMatcher(supportedTags)
)

// Negotiate picks the best supported locale for an Accept-Language header.
func Negotiate(acceptLanguage string) Locale {
	if strings.TrimSpace(acceptLanguage) == "" {
		return Resolve()
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Resolve(acceptLanguage)
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(supportedTags) {
		return Resolve()
	}
	base, _ := supportedTags[idx].Base()
	return Resolve(base.String())
}

// IsSupported reports whether code is a supported two-letter language code.
func IsSupported(code string) bool {
	switch Language(strings.ToLower(code)) {
	case English, Arabic:
		return true
	}
	return false
}
