// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package nav holds the static bilingual navigation tree and the lookups
// built on it: find by path, breadcrumb trail and pre-order flattening.
//
// Paths stored in the tree are locale-neutral; the /ar prefix is applied
// by Localized and Crumbs, never stored.
package nav

import (
	"github.com/olegiv/polysite/internal/locale"
	"github.com/olegiv/polysite/internal/model"
)

// Node is one entry of the navigation tree.
type Node struct {
	ID       string
	Label    model.Text
	Path     string
	Children []Node
}

// IsLeaf reports whether the node has no children.
func (n Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Tree is an immutable forest of top-level nodes.
type Tree struct {
	roots []Node
}

// New builds a tree from top-level nodes. The nodes are not copied deeply;
// callers must not mutate them afterwards.
func New(roots ...Node) *Tree {
	return &Tree{roots: roots}
}

// Roots returns the top-level nodes.
func (t *Tree) Roots() []Node {
	return t.roots
}

// FindByPath returns the first node, depth-first, whose path equals path.
// An empty path never matches.
func (t *Tree) FindByPath(path string) (Node, bool) {
	if path == "" {
		return Node{}, false
	}
	trail := t.BreadcrumbTrail(path)
	if len(trail) == 0 {
		return Node{}, false
	}
	return trail[len(trail)-1], true
}

// BreadcrumbTrail returns the ancestors of the node matching path in
// root-to-leaf order, ending with the node itself. It returns nil when no
// node matches.
func (t *Tree) BreadcrumbTrail(path string) []Node {
	if path == "" {
		return nil
	}
	visited := make(map[*Node]bool)
	var trail []Node
	for i := range t.roots {
		if search(&t.roots[i], path, &trail, visited) {
			return trail
		}
	}
	return nil
}

// search appends n to trail and descends. On failure the append is undone
// so trail only ever holds the chain to a match.
func search(n *Node, path string, trail *[]Node, visited map[*Node]bool) bool {
	if visited[n] {
		return false
	}
	visited[n] = true

	*trail = append(*trail, *n)
	if n.Path == path {
		return true
	}
	for i := range n.Children {
		if search(&n.Children[i], path, trail, visited) {
			return true
		}
	}
	*trail = (*trail)[:len(*trail)-1]
	return false
}

// Flatten returns every node in pre-order: parents before children,
// siblings in declaration order.
func (t *Tree) Flatten() []Node {
	var out []Node
	visited := make(map[*Node]bool)
	var walk func(nodes []Node)
	walk = func(nodes []Node) {
		for i := range nodes {
			n := &nodes[i]
			if visited[n] {
				continue
			}
			visited[n] = true
			out = append(out, *n)
			walk(n.Children)
		}
	}
	walk(t.roots)
	return out
}

// Paths returns the non-empty paths of every node in pre-order.
func (t *Tree) Paths() []string {
	var paths []string
	for _, n := range t.Flatten() {
		if n.Path != "" {
			paths = append(paths, n.Path)
		}
	}
	return paths
}

// Depth returns the number of levels in the tree.
func (t *Tree) Depth() int {
	var depth func(nodes []Node) int
	depth = func(nodes []Node) int {
		max := 0
		for _, n := range nodes {
			if d := 1 + depth(n.Children); d > max {
				max = d
			}
		}
		return max
	}
	return depth(t.roots)
}

// MenuItem is a node resolved for one language, ready for rendering.
type MenuItem struct {
	ID       string     `json:"id"`
	Label    string     `json:"label"`
	URL      string     `json:"url,omitempty"`
	IsActive bool       `json:"active,omitempty"`
	Children []MenuItem `json:"children,omitempty"`
}

// Localized resolves labels for lang and applies the locale prefix to
// paths. Items on the trail to current are marked active.
func (t *Tree) Localized(lang locale.Language, current string) []MenuItem {
	active := make(map[string]bool)
	for _, n := range t.BreadcrumbTrail(current) {
		active[n.ID] = true
	}
	return localize(t.roots, lang, active)
}

func localize(nodes []Node, lang locale.Language, active map[string]bool) []MenuItem {
	if len(nodes) == 0 {
		return nil
	}
	items := make([]MenuItem, 0, len(nodes))
	for _, n := range nodes {
		item := MenuItem{
			ID:       n.ID,
			Label:    n.Label.In(string(lang)),
			IsActive: active[n.ID],
			Children: localize(n.Children, lang, active),
		}
		if n.Path != "" {
			item.URL = locale.Localize(n.Path, lang)
		}
		items = append(items, item)
	}
	return items
}

// Crumb is one breadcrumb entry for rendering.
type Crumb struct {
	Label  string `json:"label"`
	URL    string `json:"url"`
	Active bool   `json:"active,omitempty"`
}

// Crumbs returns the breadcrumb view for path in lang, starting with a
// link to the localized home page. The last element is marked active.
// It returns nil when path is not in the tree.
func (t *Tree) Crumbs(path string, lang locale.Language, home model.Text) []Crumb {
	trail := t.BreadcrumbTrail(path)
	if len(trail) == 0 {
		return nil
	}

	crumbs := make([]Crumb, 0, len(trail)+1)
	if trail[0].Path != "/" {
		crumbs = append(crumbs, Crumb{
			Label: home.In(string(lang)),
			URL:   locale.Localize("/", lang),
		})
	}
	for _, n := range trail {
		crumbs = append(crumbs, Crumb{
			Label: n.Label.In(string(lang)),
			URL:   locale.Localize(n.Path, lang),
		})
	}
	crumbs[len(crumbs)-1].Active = true
	return crumbs
}
