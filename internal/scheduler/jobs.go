// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import "context"

// Job sources.
const (
	SourceCatalog = "catalog"
	SourceGeoIP   = "geoip"
)

// Refresher reloads a dataset.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Reloader reopens a file-backed resource.
type Reloader interface {
	Reload() error
}

// CatalogRefreshJob reloads the product and blog dataset. done, when set,
// receives the outcome of every run.
func CatalogRefreshJob(src Refresher, schedule string, done func(error)) Job {
	return Job{
		Source:      SourceCatalog,
		Name:        "refresh",
		Description: "Reload the product and blog dataset and rebuild the search and SEO tables",
		Schedule:    schedule,
		Manual:      true,
		Run: func(ctx context.Context) error {
			err := src.Refresh(ctx)
			if done != nil {
				done(err)
			}
			return err
		},
	}
}

// GeoIPReloadJob reopens the country database when the file changed.
func GeoIPReloadJob(r Reloader, schedule string) Job {
	return Job{
		Source:      SourceGeoIP,
		Name:        "reload",
		Description: "Reopen the GeoIP country database",
		Schedule:    schedule,
		Manual:      true,
		Run: func(context.Context) error {
			return r.Reload()
		},
	}
}
