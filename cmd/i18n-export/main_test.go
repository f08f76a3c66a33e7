// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/olegiv/polysite/internal/i18n"
)

func TestExport(t *testing.T) {
	c := i18n.NewFromMaps(map[string]map[string]string{
		"en": {"nav.home": "Home", "nav.about": "About", "rfq.title": "Quote request"},
		"ar": {"nav.home": "الرئيسية", "nav.about": ""},
	})

	tests := []struct {
		name        string
		onlyMissing bool
		want        [][]string
	}{
		{
			name: "all keys",
			want: [][]string{
				{"key", "en", "ar"},
				{"nav.about", "About", ""},
				{"nav.home", "Home", "الرئيسية"},
				{"rfq.title", "Quote request", ""},
			},
		},
		{
			name:        "missing only",
			onlyMissing: true,
			want: [][]string{
				{"key", "en", "ar"},
				{"nav.about", "About", ""},
				{"rfq.title", "Quote request", ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := export(&buf, c, tt.onlyMissing); err != nil {
				t.Fatalf("export() error = %v", err)
			}
			rows, err := csv.NewReader(&buf).ReadAll()
			if err != nil {
				t.Fatalf("reading csv: %v", err)
			}
			if len(rows) != len(tt.want) {
				t.Fatalf("got %d rows, want %d: %v", len(rows), len(tt.want), rows)
			}
			for i := range rows {
				for j := range rows[i] {
					if rows[i][j] != tt.want[i][j] {
						t.Errorf("row %d col %d = %q, want %q", i, j, rows[i][j], tt.want[i][j])
					}
				}
			}
		})
	}
}

func TestExportEmbeddedDictionaries(t *testing.T) {
	var buf bytes.Buffer
	if err := export(&buf, i18n.New(nil), true); err != nil {
		t.Fatalf("export() error = %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading csv: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("embedded dictionaries have %d incomplete keys: %v", len(rows)-1, rows[1:])
	}
}
