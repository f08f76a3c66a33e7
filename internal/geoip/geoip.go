// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package geoip maps client IPs to countries with a MaxMind GeoLite2-Country
// database, used to prefill the country field of a quote request.
package geoip

import (
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/oschwald/maxminddb-golang"

	"github.com/olegiv/polysite/internal/model"
)

// Local is returned for private and loopback addresses.
const Local = "LOCAL"

var privateCIDRs []*net.IPNet

func init() {
	for _, block := range []string{
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		"fc00::/7",
		"fe80::/10",
	} {
		if _, cidr, err := net.ParseCIDR(block); err == nil {
			privateCIDRs = append(privateCIDRs, cidr)
		}
	}
}

// Lookup resolves IPs to ISO country codes. The zero configuration (no
// database path) is valid and resolves nothing.
type Lookup struct {
	mu        sync.RWMutex
	db        *maxminddb.Reader
	dbPath    string
	dbModTime time.Time
}

type geoRecord struct {
	Country struct {
		ISOCode string `maxminddb:"iso_code"`
	} `maxminddb:"country"`
}

// Open creates a lookup over the database at path. An empty path disables
// lookups without error.
func Open(path string) (*Lookup, error) {
	g := &Lookup{dbPath: path}
	if path == "" {
		return g, nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.load(); err != nil {
		return g, err
	}
	return g, nil
}

// load opens or reopens the database. Caller holds mu.
func (g *Lookup) load() error {
	info, err := os.Stat(g.dbPath)
	if err != nil {
		return fmt.Errorf("stat geoip database: %w", err)
	}
	if g.db != nil && info.ModTime().Equal(g.dbModTime) {
		return nil
	}

	db, err := maxminddb.Open(g.dbPath)
	if err != nil {
		return fmt.Errorf("opening geoip database: %w", err)
	}
	if g.db != nil {
		_ = g.db.Close()
	}
	g.db = db
	g.dbModTime = info.ModTime()
	return nil
}

// Reload reopens the database when the file changed. The scheduler calls
// it alongside the catalog refresh.
func (g *Lookup) Reload() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.dbPath == "" {
		return nil
	}
	return g.load()
}

// Enabled reports whether a database is loaded.
func (g *Lookup) Enabled() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.db != nil
}

// Country returns the ISO code for ip, Local for private addresses, or ""
// when unknown.
func (g *Lookup) Country(ip string) string {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return ""
	}
	if parsed.IsLoopback() || isPrivate(parsed) {
		return Local
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.db == nil {
		return ""
	}
	var record geoRecord
	if err := g.db.Lookup(parsed, &record); err != nil {
		return ""
	}
	return record.Country.ISOCode
}

// Close releases the database.
func (g *Lookup) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.db == nil {
		return nil
	}
	err := g.db.Close()
	g.db = nil
	return err
}

func isPrivate(ip net.IP) bool {
	for _, cidr := range privateCIDRs {
		if cidr.Contains(ip) {
			return true
		}
	}
	return false
}

var countries = map[string]model.Text{
	"AE": model.T("United Arab Emirates", "الإمارات العربية المتحدة"),
	"SA": model.T("Saudi Arabia", "المملكة العربية السعودية"),
	"QA": model.T("Qatar", "قطر"),
	"KW": model.T("Kuwait", "الكويت"),
	"BH": model.T("Bahrain", "البحرين"),
	"OM": model.T("Oman", "عُمان"),
	"JO": model.T("Jordan", "الأردن"),
	"EG": model.T("Egypt", "مصر"),
	"IQ": model.T("Iraq", "العراق"),
	"LB": model.T("Lebanon", "لبنان"),
	"MA": model.T("Morocco", "المغرب"),
	"TR": model.T("Turkey", "تركيا"),
	"IN": model.T("India", "الهند"),
	"PK": model.T("Pakistan", "باكستان"),
	"CN": model.T("China", "الصين"),
	"DE": model.T("Germany", "ألمانيا"),
	"GB": model.T("United Kingdom", "المملكة المتحدة"),
	"US": model.T("United States", "الولايات المتحدة"),
}

// CountryName returns the display name of an ISO code in lang. Unknown
// codes are returned as is; Local and "" yield "".
func CountryName(code, lang string) string {
	if name, ok := countries[code]; ok {
		return name.In(lang)
	}
	if code == Local {
		return ""
	}
	return code
}
