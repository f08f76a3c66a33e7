// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package i18n

import (
	"testing"
	"testing/fstest"
)

func TestNew(t *testing.T) {
	c := New(nil)

	if c.TranslationCount("en") == 0 {
		t.Error("Expected English translations to be loaded")
	}
	if c.TranslationCount("ar") == 0 {
		t.Error("Expected Arabic translations to be loaded")
	}
}

func TestDictionariesHaveSameKeys(t *testing.T) {
	c := New(nil)
	en := c.Dictionary("en")
	ar := c.Dictionary("ar")

	for k := range en {
		if _, ok := ar[k]; !ok {
			t.Errorf("key %q missing from Arabic dictionary", k)
		}
	}
	for k := range ar {
		if _, ok := en[k]; !ok {
			t.Errorf("key %q missing from English dictionary", k)
		}
	}
}

func TestT(t *testing.T) {
	c := NewFromMaps(map[string]map[string]string{
		"en": {
			"rfq.added":     "{{name}} added.",
			"contact.title": "Request a quote",
			"only.en":       "English only",
		},
		"ar": {
			"rfq.added":     "تمت إضافة {{name}}.",
			"contact.title": "اطلب عرض سعر",
		},
	})

	tests := []struct {
		lang     string
		key      string
		params   map[string]any
		expected string
	}{
		{"en", "contact.title", nil, "Request a quote"},
		{"ar", "contact.title", nil, "اطلب عرض سعر"},
		{"en", "rfq.added", map[string]any{"name": "rHDPE"}, "rHDPE added."},
		{"ar", "rfq.added", map[string]any{"name": "rHDPE"}, "تمت إضافة rHDPE."},
		// Falls back to English
		{"ar", "only.en", nil, "English only"},
		{"de", "contact.title", nil, "Request a quote"},
		// Returns key if not found anywhere
		{"en", "nonexistent.key", nil, "nonexistent.key"},
	}

	for _, tt := range tests {
		t.Run(tt.lang+"_"+tt.key, func(t *testing.T) {
			if got := c.T(tt.lang, tt.key, tt.params); got != tt.expected {
				t.Errorf("T(%q, %q) = %q, want %q", tt.lang, tt.key, got, tt.expected)
			}
		})
	}
}

func TestParseFlattensNestedKeys(t *testing.T) {
	dict, err := Parse([]byte(`{"a":{"b":{"c":"deep"},"n":3},"top":"x","nil":null}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := map[string]string{"a.b.c": "deep", "a.n": "3", "top": "x", "nil": ""}
	if len(dict) != len(want) {
		t.Fatalf("Parse returned %d keys, want %d: %v", len(dict), len(want), dict)
	}
	for k, v := range want {
		if dict[k] != v {
			t.Errorf("dict[%q] = %q, want %q", k, dict[k], v)
		}
	}
}

func TestMalformedDictionaryDegradesToEmpty(t *testing.T) {
	fsys := fstest.MapFS{
		"en.json": {Data: []byte(`{"greeting":"Hello"}`)},
		"ar.json": {Data: []byte(`{not json`)},
	}

	c := NewFromFS(fsys, nil)

	if got := c.TranslationCount("ar"); got != 0 {
		t.Errorf("TranslationCount(ar) = %d, want 0", got)
	}
	if got := c.T("ar", "greeting", nil); got != "Hello" {
		t.Errorf("T(ar, greeting) = %q, want English fallback", got)
	}
}

func TestKeysSortedUnion(t *testing.T) {
	c := NewFromMaps(map[string]map[string]string{
		"en": {"b": "1", "a": "2"},
		"ar": {"c": "3", "a": "4"},
	})

	keys := c.Keys()
	want := []string{"a", "b", "c"}
	if len(keys) != len(want) {
		t.Fatalf("Keys() = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}
