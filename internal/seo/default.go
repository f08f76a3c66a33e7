// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"github.com/olegiv/polysite/internal/locale"
	"github.com/olegiv/polysite/internal/model"
)

// StaticEntries returns the hand-written entries for the site's fixed
// pages, including the wildcard.
func StaticEntries(site SiteConfig) []Entry {
	return []Entry{
		{
			Path:        "/",
			Title:       model.T("Polymer Resins and Recycled Plastics Supplier", "مورد راتنجات البوليمر والبلاستيك المعاد تدويره"),
			Description: model.T("Virgin and recycled polyethylene, polypropylene and PET grades for packaging, pipe and film converters across the Gulf.", "درجات البولي إيثيلين والبولي بروبيلين وPET الأصلية والمعاد تدويرها لمصنعي التغليف والأنابيب والأغشية في الخليج."),
			Keywords:    model.T("polymer supplier, HDPE, LDPE, polypropylene, recycled plastics", "مورد بوليمرات، بولي إيثيلين، بولي بروبيلين، بلاستيك معاد تدويره"),
			StructuredData: StructuredData{
				EN: []any{WebSite(site, locale.English), Organization(site, locale.English)},
				AR: []any{WebSite(site, locale.Arabic), Organization(site, locale.Arabic)},
			},
		},
		{
			Path:        "/products",
			Title:       model.T("Products", "المنتجات"),
			Description: model.T("Browse polyethylene, polypropylene and recycled polymer grades with technical data.", "تصفح درجات البولي إيثيلين والبولي بروبيلين والبوليمرات المعاد تدويرها مع البيانات الفنية."),
			Keywords:    model.T("polymer grades, resin catalog", "درجات البوليمر، كتالوج الراتنجات"),
		},
		{
			Path:        "/products/polyethylene",
			Title:       model.T("Polyethylene Grades", "درجات البولي إيثيلين"),
			Description: model.T("HDPE, LDPE and LLDPE for film, blow molding and pipe.", "HDPE وLDPE وLLDPE للأغشية والقولبة بالنفخ والأنابيب."),
		},
		{
			Path:        "/products/polypropylene",
			Title:       model.T("Polypropylene Grades", "درجات البولي بروبيلين"),
			Description: model.T("Homopolymer and copolymer polypropylene for raffia, injection and pipe.", "بولي بروبيلين متجانس ومشترك للرافيا والحقن والأنابيب."),
		},
		{
			Path:        "/products/recycled",
			Title:       model.T("Recycled Polymers", "البوليمرات المعاد تدويرها"),
			Description: model.T("Post-consumer rHDPE and rPET with consistent melt flow and low contamination.", "rHDPE وrPET معاد تدويرها بتدفق انصهار ثابت وتلوث منخفض."),
		},
		{
			Path:        "/applications",
			Title:       model.T("Applications", "التطبيقات"),
			Description: model.T("Polymer solutions for packaging, construction, automotive and agriculture.", "حلول البوليمر للتغليف والبناء والسيارات والزراعة."),
		},
		{
			Path:        "/sustainability",
			Title:       model.T("Sustainability", "الاستدامة"),
			Description: model.T("Our recycled content program and circular sourcing commitments.", "برنامج المحتوى المعاد تدويره والتزامات التوريد الدائري لدينا."),
		},
		{
			Path:        "/resources",
			Title:       model.T("Resources", "الموارد"),
			Description: model.T("Technical datasheets, articles and answers for polymer buyers.", "نشرات فنية ومقالات وإجابات لمشتري البوليمرات."),
		},
		{
			Path:        "/resources/blog",
			Title:       model.T("Blog", "المدونة"),
			Description: model.T("Articles on resin selection, recycling and processing.", "مقالات حول اختيار الراتنج وإعادة التدوير والمعالجة."),
		},
		{
			Path:        "/resources/datasheets",
			Title:       model.T("Technical Datasheets", "النشرات الفنية"),
			Description: model.T("Download datasheets for every grade we supply.", "حمّل النشرات الفنية لكل درجة نوردها."),
		},
		{
			Path:        "/about",
			Title:       model.T("About Us", "من نحن"),
			Description: model.T("A regional polymer distributor serving converters since 2009.", "موزع إقليمي للبوليمرات يخدم المصنعين منذ 2009."),
		},
		{
			Path:        "/contact",
			Title:       model.T("Contact", "اتصل بنا"),
			Description: model.T("Talk to our sales team about grades, volumes and delivery.", "تحدث مع فريق المبيعات حول الدرجات والكميات والتسليم."),
		},
		{
			Path:        "/contact/rfq",
			Title:       model.T("Request a Quote", "طلب عرض سعر"),
			Description: model.T("Send us the grades and volumes you need and receive a quotation within one business day.", "أرسل لنا الدرجات والكميات التي تحتاجها واحصل على عرض سعر خلال يوم عمل واحد."),
		},
		{
			Path:        Wildcard,
			Title:       model.T("Polymer Solutions", "حلول البوليمر"),
			Description: model.T("Polymer resins, recycled plastics and technical support for manufacturers.", "راتنجات البوليمر والبلاستيك المعاد تدويره والدعم الفني للمصنعين."),
			StructuredData: StructuredData{
				EN: Organization(site, locale.English),
				AR: Organization(site, locale.Arabic),
			},
		},
	}
}

// BuildTable combines the static entries with entries derived from the
// datasets.
func BuildTable(site SiteConfig, products []model.Product, posts []model.BlogPost) (*Table, error) {
	entries := StaticEntries(site)
	entries = append(entries, DerivedEntries(products, posts, site)...)
	return NewTable(entries...)
}
