// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command i18n-export writes the translation dictionaries as CSV with one
// row per key and one column per language, for review by translators.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/olegiv/polysite/internal/i18n"
)

func main() {
	out := flag.String("o", "", "Output file (default: stdout)")
	missing := flag.Bool("missing", false, "Only export keys missing in at least one language")
	flag.Parse()

	if err := run(*out, *missing); err != nil {
		slog.Error("export failed", "error", err)
		os.Exit(1)
	}
}

func run(path string, onlyMissing bool) error {
	w := io.Writer(os.Stdout)
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}
	return export(w, i18n.New(nil), onlyMissing)
}

func export(w io.Writer, c *i18n.Catalog, onlyMissing bool) error {
	dicts := make([]map[string]string, len(i18n.SupportedLanguages))
	for i, lang := range i18n.SupportedLanguages {
		dicts[i] = c.Dictionary(lang)
	}

	cw := csv.NewWriter(w)
	header := append([]string{"key"}, i18n.SupportedLanguages...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, key := range c.Keys() {
		row := []string{key}
		complete := true
		for _, d := range dicts {
			v, ok := d[key]
			if !ok || v == "" {
				complete = false
			}
			row = append(row, v)
		}
		if onlyMissing && complete {
			continue
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
