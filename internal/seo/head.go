// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"html/template"
	"io"
)

var headTemplate = template.Must(template.New("head").Parse(`<title>{{.Title}}</title>
{{- with .Description}}
<meta name="description" content="{{.}}">{{end}}
{{- with .Keywords}}
<meta name="keywords" content="{{.}}">{{end}}
<meta name="robots" content="{{.Robots}}">
<link rel="canonical" href="{{.Canonical}}">
{{- range .Alternates}}
<link rel="alternate" hreflang="{{.HrefLang}}" href="{{.URL}}">{{end}}
<meta property="og:type" content="{{.OGType}}">
<meta property="og:title" content="{{.Title}}">
{{- with .Description}}
<meta property="og:description" content="{{.}}">{{end}}
<meta property="og:url" content="{{.Canonical}}">
<meta property="og:site_name" content="{{.SiteName}}">
<meta property="og:locale" content="{{.OGLocale}}">
{{- with .OGImage}}
<meta property="og:image" content="{{.}}">{{end}}
<meta name="twitter:card" content="{{.TwitterCard}}">
{{- with .TwitterSite}}
<meta name="twitter:site" content="{{.}}">{{end}}
{{- range .JSONLDBlocks}}
<script type="application/ld+json">{{.}}</script>{{end}}
`))

// RenderHead writes the head tags for r.
func RenderHead(w io.Writer, r Resolved) error {
	return headTemplate.Execute(w, r)
}
