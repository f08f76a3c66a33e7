// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package contact

import "github.com/olegiv/polysite/internal/geoip"

// CountryLookup resolves a client IP to an ISO country code.
type CountryLookup interface {
	Country(ip string) string
}

// Defaults are the initial form values shown to a visitor.
type Defaults struct {
	Country     string `json:"country"`
	CountryCode string `json:"country_code,omitempty"`
}

// DefaultValues prefills the country from the client IP. Without a lookup,
// or for local and unknown addresses, the country stays empty.
func DefaultValues(lookup CountryLookup, ip, lang string) Defaults {
	if lookup == nil {
		return Defaults{}
	}
	code := lookup.Country(ip)
	if code == "" || code == geoip.Local {
		return Defaults{}
	}
	return Defaults{
		Country:     geoip.CountryName(code, lang),
		CountryCode: code,
	}
}
