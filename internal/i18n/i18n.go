// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package i18n provides the bilingual translation lookup service.
//
// Dictionaries are nested JSON objects, one file per language, flattened to
// dotted keys ("contact.errors.required") when loaded.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/olegiv/polysite/internal/model"
)

//go:embed locales
var localesFS embed.FS

// SupportedLanguages lists the dictionary languages, default first.
var SupportedLanguages = []string{model.LangEnglish, model.LangArabic}

// Translator resolves a dotted key for a language. Params replace
// {{name}} placeholders in the message.
type Translator interface {
	T(lang, key string, params map[string]any) string
}

// Catalog holds one flat dictionary per language.
type Catalog struct {
	mu           sync.RWMutex
	translations map[string]map[string]string // lang -> key -> translation
	defaultLang  string
	logger       *slog.Logger
}

var _ Translator = (*Catalog)(nil)

// New loads the embedded dictionaries.
func New(logger *slog.Logger) *Catalog {
	sub, err := fs.Sub(localesFS, "locales")
	if err != nil {
		// embed paths are fixed at build time
		panic(err)
	}
	return NewFromFS(sub, logger)
}

// NewFromFS loads "<lang>.json" for every supported language from fsys.
// A missing or malformed file leaves that language with an empty
// dictionary; lookups then fall back to English or the raw key.
func NewFromFS(fsys fs.FS, logger *slog.Logger) *Catalog {
	c := &Catalog{
		translations: make(map[string]map[string]string),
		defaultLang:  model.LangEnglish,
		logger:       logger,
	}

	for _, lang := range SupportedLanguages {
		dict, err := loadLanguage(fsys, lang)
		if err != nil {
			if logger != nil {
				logger.Warn("translation dictionary unavailable", "language", lang, "error", err)
			}
			dict = map[string]string{}
		}
		c.translations[lang] = dict
		if logger != nil {
			logger.Debug("loaded translations", "language", lang, "count", len(dict))
		}
	}

	return c
}

// NewFromMaps builds a catalog from already flattened dictionaries.
func NewFromMaps(dicts map[string]map[string]string) *Catalog {
	c := &Catalog{
		translations: make(map[string]map[string]string, len(dicts)),
		defaultLang:  model.LangEnglish,
	}
	for lang, d := range dicts {
		cp := make(map[string]string, len(d))
		for k, v := range d {
			cp[k] = v
		}
		c.translations[lang] = cp
	}
	return c
}

func loadLanguage(fsys fs.FS, lang string) (map[string]string, error) {
	path := lang + ".json"
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	dict, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return dict, nil
}

// Parse decodes a nested JSON dictionary into dotted keys.
// Non-string leaves (numbers, booleans) are kept in their JSON text form.
func Parse(data []byte) (map[string]string, error) {
	var nested map[string]any
	if err := json.Unmarshal(data, &nested); err != nil {
		return nil, err
	}
	flat := make(map[string]string)
	flatten("", nested, flat)
	return flat, nil
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		case nil:
			out[key] = ""
		default:
			b, _ := json.Marshal(val)
			out[key] = string(b)
		}
	}
}

// T translates key into lang. A key missing in lang falls back to English,
// then to the key itself.
func (c *Catalog) T(lang, key string, params map[string]any) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if msg, ok := c.translations[lang][key]; ok {
		return interpolate(msg, params)
	}
	if lang != c.defaultLang {
		if msg, ok := c.translations[c.defaultLang][key]; ok {
			if c.logger != nil {
				c.logger.Debug("missing translation, using default", "key", key, "lang", lang)
			}
			return interpolate(msg, params)
		}
	}
	return key
}

func interpolate(msg string, params map[string]any) string {
	if len(params) == 0 || !strings.Contains(msg, "{{") {
		return msg
	}
	pairs := make([]string, 0, len(params)*2)
	for name, v := range params {
		pairs = append(pairs, "{{"+name+"}}", fmt.Sprint(v))
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

// Dictionary returns a copy of the flat dictionary for lang.
func (c *Catalog) Dictionary(lang string) map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	src := c.translations[lang]
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// Keys returns the sorted union of keys across all languages.
func (c *Catalog) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, dict := range c.translations {
		for k := range dict {
			seen[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// TranslationCount returns the number of keys loaded for lang.
func (c *Catalog) TranslationCount(lang string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.translations[lang])
}
