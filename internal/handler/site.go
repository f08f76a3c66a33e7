// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/olegiv/polysite/internal/catalog"
	"github.com/olegiv/polysite/internal/i18n"
	"github.com/olegiv/polysite/internal/locale"
	"github.com/olegiv/polysite/internal/middleware"
	"github.com/olegiv/polysite/internal/nav"
	"github.com/olegiv/polysite/internal/seo"
)

// Snapshotter exposes the current catalog dataset.
type Snapshotter interface {
	Snapshot() *catalog.Dataset
}

// SiteHandler serves navigation, SEO metadata, the page shell, robots.txt
// and the sitemap.
type SiteHandler struct {
	tree     *nav.Tree
	resolver *seo.Resolver
	catalog  Snapshotter
	tr       i18n.Translator
	robots   seo.RobotsConfig
	logger   *slog.Logger
}

// NewSiteHandler creates a new site handler. disallowAll blocks crawlers,
// for staging deployments.
func NewSiteHandler(tree *nav.Tree, resolver *seo.Resolver, src Snapshotter, tr i18n.Translator, disallowAll bool, logger *slog.Logger) *SiteHandler {
	return &SiteHandler{
		tree:     tree,
		resolver: resolver,
		catalog:  src,
		tr:       tr,
		robots: seo.RobotsConfig{
			SiteURL:     resolver.Site().URL,
			DisallowAll: disallowAll,
		},
		logger: logger,
	}
}

// targetPath returns the locale-neutral page path named by the ?path query
// parameter and the language to resolve it in. An /ar prefix on the
// parameter selects Arabic; otherwise the request language applies.
func targetPath(r *http.Request) (string, locale.Locale) {
	loc := middleware.GetLanguage(r).Locale
	p := strings.TrimSpace(r.URL.Query().Get("path"))
	if p == "" {
		return "/", loc
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	neutral, lang := locale.StripPrefix(p)
	if lang == locale.Arabic {
		loc = locale.Of(locale.Arabic)
	}
	return neutral, loc
}

// Nav handles GET /api/nav. Items on the trail to ?path are marked active.
func (h *SiteHandler) Nav(w http.ResponseWriter, r *http.Request) {
	path, loc := targetPath(r)
	writeJSONSuccess(w, map[string]any{
		"lang":  loc.Code(),
		"dir":   string(loc.Direction),
		"items": h.tree.Localized(loc.Language, path),
	})
}

// Breadcrumbs handles GET /api/breadcrumbs. A path outside the tree yields
// an empty trail.
func (h *SiteHandler) Breadcrumbs(w http.ResponseWriter, r *http.Request) {
	path, loc := targetPath(r)
	crumbs := h.tree.Crumbs(path, loc.Language, nav.Home)
	if crumbs == nil {
		crumbs = []nav.Crumb{}
	}
	data := map[string]any{
		"lang":  loc.Code(),
		"path":  path,
		"items": crumbs,
	}
	if bl := seo.BreadcrumbList(crumbs, h.resolver.Site().URL); bl != nil {
		data["structured_data"] = bl
	}
	writeJSONSuccess(w, data)
}

// SEO handles GET /api/seo.
func (h *SiteHandler) SEO(w http.ResponseWriter, r *http.Request) {
	path, loc := targetPath(r)
	writeJSONSuccess(w, map[string]any{
		"seo": h.resolver.Resolve(path, loc.Language, nil),
	})
}

// Robots handles GET /robots.txt.
func (h *SiteHandler) Robots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write([]byte(seo.NewRobotsBuilder(h.robots).Build()))
}

// Sitemap handles GET /sitemap.xml.
func (h *SiteHandler) Sitemap(w http.ResponseWriter, _ *http.Request) {
	b := seo.NewSitemapBuilder(h.resolver)
	b.AddPaths(h.tree.Paths())
	if ds := h.catalog.Snapshot(); ds != nil {
		b.AddProducts(ds.Products)
		b.AddPosts(ds.Posts)
	}
	b.AddPaths(h.resolver.Table().Paths())

	out, err := b.Build()
	if err != nil {
		h.logger.Error("failed to build sitemap", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(out)
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}" dir="{{.Dir}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
{{.Head}}
</head>
<body>
<header>
<nav aria-label="main"><ul>{{template "menu" .Menu}}</ul></nav>
<a class="lang-switch" href="{{.SwitchURL}}" hreflang="{{.SwitchLang}}">{{.SwitchLabel}}</a>
</header>
{{- with .Crumbs}}
<nav aria-label="{{$.BreadcrumbLabel}}"><ol class="breadcrumbs">{{range .}}<li>{{if .Active}}<span aria-current="page">{{.Label}}</span>{{else}}<a href="{{.URL}}">{{.Label}}</a>{{end}}</li>{{end}}</ol></nav>
{{- end}}
<main>
<h1>{{.Heading}}</h1>
{{- with .Lead}}
<p>{{.}}</p>
{{- end}}
</main>
</body>
</html>
{{define "menu"}}{{range .}}<li{{if .IsActive}} class="active"{{end}}>{{if .URL}}<a href="{{.URL}}">{{.Label}}</a>{{else}}{{.Label}}{{end}}{{with .Children}}<ul>{{template "menu" .}}</ul>{{end}}</li>{{end}}{{end}}
`))

type pageData struct {
	Lang            string
	Dir             string
	Head            template.HTML
	Menu            []nav.MenuItem
	Crumbs          []nav.Crumb
	BreadcrumbLabel string
	Heading         string
	Lead            string
	SwitchURL       string
	SwitchLang      string
	SwitchLabel     string
}

// Page renders the document shell for any locale-neutral path: resolved
// head tags, the localized menu and breadcrumbs. Paths unknown to both the
// navigation tree and the SEO table get a 404 marked noindex.
func (h *SiteHandler) Page(w http.ResponseWriter, r *http.Request) {
	info := middleware.GetLanguage(r)
	path := info.Path
	loc := info.Locale
	code := loc.Code()

	status := http.StatusOK
	var override *seo.Override
	heading, lead := h.heading(path, code)
	if heading == "" {
		status = http.StatusNotFound
		heading = h.tr.T(code, "common.not_found", nil)
		lead = h.tr.T(code, "common.not_found_description", nil)
		override = &seo.Override{Title: heading, Description: lead, NoIndex: true}
	}

	res := h.resolver.Resolve(path, loc.Language, override)
	crumbs := h.tree.Crumbs(path, loc.Language, nav.Home)
	if bl := seo.BreadcrumbList(crumbs, h.resolver.Site().URL); bl != nil {
		res.StructuredData = append(res.StructuredData, bl)
	}

	var head bytes.Buffer
	if err := seo.RenderHead(&head, res); err != nil {
		h.logger.Error("failed to render head", "path", path, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	other := locale.English
	if loc.Language == locale.English {
		other = locale.Arabic
	}
	data := pageData{
		Lang:            code,
		Dir:             string(loc.Direction),
		Head:            template.HTML(head.String()), // rendered by html/template
		Menu:            h.tree.Localized(loc.Language, path),
		Crumbs:          crumbs,
		BreadcrumbLabel: h.tr.T(code, "nav.breadcrumb_label", nil),
		Heading:         heading,
		Lead:            lead,
		SwitchURL:       locale.Localize(path, loc.Language) + "?lang=" + string(other),
		SwitchLang:      string(other),
		SwitchLabel:     h.tr.T(code, "common.switch_language", nil),
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		h.logger.Error("failed to render page", "path", path, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Language", code)
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// heading returns the page heading and lead text, or "" for unknown paths.
func (h *SiteHandler) heading(path, code string) (string, string) {
	if e, ok := h.resolver.Table().Lookup(path); ok {
		return e.Title.In(code), e.Description.In(code)
	}
	if n, ok := h.tree.FindByPath(path); ok {
		return n.Label.In(code), ""
	}
	return "", ""
}
