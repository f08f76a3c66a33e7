// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package nav

import (
	"strings"
	"testing"

	"github.com/olegiv/polysite/internal/locale"
	"github.com/olegiv/polysite/internal/model"
)

func testTree() *Tree {
	return New(
		Node{ID: "home", Label: model.T("Home", "الرئيسية"), Path: "/"},
		Node{
			ID:    "products",
			Label: model.T("Products", "المنتجات"),
			Path:  "/products",
			Children: []Node{
				{
					ID:    "pe",
					Label: model.T("Polyethylene", "البولي إيثيلين"),
					Path:  "/products/pe",
					Children: []Node{
						{ID: "hdpe", Label: model.T("HDPE", ""), Path: "/products/pe/hdpe"},
					},
				},
				{ID: "pp", Label: model.T("Polypropylene", "البولي بروبيلين"), Path: "/products/pp"},
			},
		},
		Node{
			ID:    "more",
			Label: model.T("More", "المزيد"),
			Children: []Node{
				{ID: "about", Label: model.T("About", "من نحن"), Path: "/about"},
			},
		},
	)
}

func ids(nodes []Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.ID
	}
	return strings.Join(parts, ",")
}

func TestFindByPath(t *testing.T) {
	tree := testTree()

	tests := []struct {
		path   string
		wantID string
		found  bool
	}{
		{"/", "home", true},
		{"/products", "products", true},
		{"/products/pe/hdpe", "hdpe", true},
		{"/about", "about", true},
		{"/missing", "", false},
		{"/products/pe/", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			n, ok := tree.FindByPath(tt.path)
			if ok != tt.found {
				t.Fatalf("FindByPath(%q) found = %v, want %v", tt.path, ok, tt.found)
			}
			if n.ID != tt.wantID {
				t.Errorf("FindByPath(%q).ID = %q, want %q", tt.path, n.ID, tt.wantID)
			}
		})
	}
}

func TestBreadcrumbTrail(t *testing.T) {
	tree := testTree()

	tests := []struct {
		path string
		want string
	}{
		{"/", "home"},
		{"/products", "products"},
		{"/products/pe", "products,pe"},
		{"/products/pe/hdpe", "products,pe,hdpe"},
		{"/products/pp", "products,pp"},
		{"/about", "more,about"},
		{"/nope", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			trail := tree.BreadcrumbTrail(tt.path)
			if got := ids(trail); got != tt.want {
				t.Errorf("BreadcrumbTrail(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestBreadcrumbTrailEndsWithMatchForEveryPath(t *testing.T) {
	tree := Default()

	for _, p := range tree.Paths() {
		trail := tree.BreadcrumbTrail(p)
		if len(trail) == 0 {
			t.Errorf("BreadcrumbTrail(%q) is empty", p)
			continue
		}
		if last := trail[len(trail)-1]; last.Path != p {
			t.Errorf("BreadcrumbTrail(%q) ends with %q", p, last.Path)
		}
		// every element must be the parent of the next one
		for i := 0; i+1 < len(trail); i++ {
			found := false
			for _, c := range trail[i].Children {
				if c.ID == trail[i+1].ID {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("BreadcrumbTrail(%q): %q is not a child of %q", p, trail[i+1].ID, trail[i].ID)
			}
		}
	}
}

func TestFlattenPreOrder(t *testing.T) {
	got := ids(testTree().Flatten())
	want := "home,products,pe,hdpe,pp,more,about"
	if got != want {
		t.Errorf("Flatten() = %q, want %q", got, want)
	}
}

func TestDefaultTree(t *testing.T) {
	tree := Default()

	if d := tree.Depth(); d > 4 {
		t.Errorf("Depth() = %d, want <= 4", d)
	}

	seenPath := make(map[string]bool)
	seenID := make(map[string]bool)
	for _, n := range tree.Flatten() {
		if seenID[n.ID] {
			t.Errorf("duplicate node id %q", n.ID)
		}
		seenID[n.ID] = true
		if n.Label.EN == "" || n.Label.AR == "" {
			t.Errorf("node %q is missing a label", n.ID)
		}
		if n.Path == "" {
			continue
		}
		if seenPath[n.Path] {
			t.Errorf("duplicate path %q", n.Path)
		}
		seenPath[n.Path] = true
	}

	if _, ok := tree.FindByPath("/contact/rfq"); !ok {
		t.Error("expected /contact/rfq in default tree")
	}
}

func TestLocalized(t *testing.T) {
	items := testTree().Localized(locale.Arabic, "/products/pe/hdpe")

	if len(items) != 3 {
		t.Fatalf("Localized returned %d items, want 3", len(items))
	}
	if items[0].URL != "/ar" {
		t.Errorf("home URL = %q, want %q", items[0].URL, "/ar")
	}
	products := items[1]
	if products.Label != "المنتجات" || products.URL != "/ar/products" {
		t.Errorf("products = %+v", products)
	}
	if !products.IsActive {
		t.Error("products should be active on the trail")
	}
	hdpe := products.Children[0].Children[0]
	// Arabic label empty, falls back to English
	if hdpe.Label != "HDPE" {
		t.Errorf("hdpe label = %q, want %q", hdpe.Label, "HDPE")
	}
	if !hdpe.IsActive {
		t.Error("hdpe should be active")
	}
	if products.Children[1].IsActive {
		t.Error("pp should not be active")
	}
	if items[2].URL != "" {
		t.Errorf("pathless node URL = %q, want empty", items[2].URL)
	}
}

func TestCrumbs(t *testing.T) {
	tree := testTree()
	home := model.T("Home", "الرئيسية")

	crumbs := tree.Crumbs("/products/pe", locale.English, home)
	if len(crumbs) != 3 {
		t.Fatalf("Crumbs returned %d, want 3: %+v", len(crumbs), crumbs)
	}
	if crumbs[0].URL != "/" || crumbs[0].Label != "Home" {
		t.Errorf("first crumb = %+v", crumbs[0])
	}
	if !crumbs[2].Active || crumbs[1].Active {
		t.Errorf("only the last crumb should be active: %+v", crumbs)
	}

	ar := tree.Crumbs("/products/pe", locale.Arabic, home)
	if ar[2].URL != "/ar/products/pe" {
		t.Errorf("arabic crumb URL = %q", ar[2].URL)
	}

	// home page itself does not get a duplicate home crumb
	if got := tree.Crumbs("/", locale.English, home); len(got) != 1 {
		t.Errorf("Crumbs(/) returned %d, want 1", len(got))
	}

	if got := tree.Crumbs("/missing", locale.English, home); got != nil {
		t.Errorf("Crumbs(/missing) = %+v, want nil", got)
	}
}
