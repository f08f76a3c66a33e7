// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package nav

import "github.com/olegiv/polysite/internal/model"

// Home is the label of the home link prepended to breadcrumbs.
var Home = model.T("Home", "الرئيسية")

// Default returns the site navigation tree.
func Default() *Tree {
	return New(
		Node{ID: "home", Label: Home, Path: "/"},
		Node{
			ID:    "products",
			Label: model.T("Products", "المنتجات"),
			Path:  "/products",
			Children: []Node{
				{
					ID:    "polyethylene",
					Label: model.T("Polyethylene", "البولي إيثيلين"),
					Path:  "/products/polyethylene",
					Children: []Node{
						{
							ID:    "hdpe",
							Label: model.T("HDPE", "بولي إيثيلين عالي الكثافة"),
							Path:  "/products/polyethylene/hdpe",
							Children: []Node{
								{ID: "hdpe-blow-molding", Label: model.T("Blow Molding Grades", "درجات القولبة بالنفخ"), Path: "/products/polyethylene/hdpe/blow-molding"},
								{ID: "hdpe-pipe", Label: model.T("Pipe Grades", "درجات الأنابيب"), Path: "/products/polyethylene/hdpe/pipe"},
							},
						},
						{
							ID:    "ldpe",
							Label: model.T("LDPE", "بولي إيثيلين منخفض الكثافة"),
							Path:  "/products/polyethylene/ldpe",
							Children: []Node{
								{ID: "ldpe-film", Label: model.T("Film Grades", "درجات الأغشية"), Path: "/products/polyethylene/ldpe/film"},
							},
						},
						{ID: "lldpe", Label: model.T("LLDPE", "بولي إيثيلين خطي منخفض الكثافة"), Path: "/products/polyethylene/lldpe"},
					},
				},
				{
					ID:    "polypropylene",
					Label: model.T("Polypropylene", "البولي بروبيلين"),
					Path:  "/products/polypropylene",
					Children: []Node{
						{
							ID:    "pp-homopolymer",
							Label: model.T("PP Homopolymer", "بولي بروبيلين متجانس"),
							Path:  "/products/polypropylene/homopolymer",
							Children: []Node{
								{ID: "pp-raffia", Label: model.T("Raffia Grades", "درجات الرافيا"), Path: "/products/polypropylene/homopolymer/raffia"},
								{ID: "pp-injection", Label: model.T("Injection Grades", "درجات الحقن"), Path: "/products/polypropylene/homopolymer/injection"},
							},
						},
						{ID: "pp-copolymer", Label: model.T("PP Copolymer", "بولي بروبيلين مشترك"), Path: "/products/polypropylene/copolymer"},
					},
				},
				{
					ID:    "recycled",
					Label: model.T("Recycled Polymers", "البوليمرات المعاد تدويرها"),
					Path:  "/products/recycled",
					Children: []Node{
						{ID: "rhdpe", Label: model.T("rHDPE", "rHDPE"), Path: "/products/recycled/rhdpe"},
						{ID: "rpet", Label: model.T("rPET", "rPET"), Path: "/products/recycled/rpet"},
					},
				},
			},
		},
		Node{
			ID:    "applications",
			Label: model.T("Applications", "التطبيقات"),
			Path:  "/applications",
			Children: []Node{
				{ID: "app-packaging", Label: model.T("Packaging", "التغليف"), Path: "/applications/packaging"},
				{ID: "app-construction", Label: model.T("Construction", "البناء"), Path: "/applications/construction"},
				{ID: "app-automotive", Label: model.T("Automotive", "السيارات"), Path: "/applications/automotive"},
				{ID: "app-agriculture", Label: model.T("Agriculture", "الزراعة"), Path: "/applications/agriculture"},
			},
		},
		Node{ID: "sustainability", Label: model.T("Sustainability", "الاستدامة"), Path: "/sustainability"},
		Node{
			ID:    "resources",
			Label: model.T("Resources", "الموارد"),
			Path:  "/resources",
			Children: []Node{
				{ID: "blog", Label: model.T("Blog", "المدونة"), Path: "/resources/blog"},
				{ID: "datasheets", Label: model.T("Technical Datasheets", "النشرات الفنية"), Path: "/resources/datasheets"},
				{ID: "faq", Label: model.T("FAQ", "الأسئلة الشائعة"), Path: "/resources/faq"},
			},
		},
		Node{ID: "about", Label: model.T("About Us", "من نحن"), Path: "/about"},
		Node{
			ID:    "contact",
			Label: model.T("Contact", "اتصل بنا"),
			Path:  "/contact",
			Children: []Node{
				{ID: "rfq", Label: model.T("Request a Quote", "طلب عرض سعر"), Path: "/contact/rfq"},
			},
		},
	)
}
