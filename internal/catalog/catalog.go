// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package catalog serves the read-only product and blog dataset.
package catalog

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/olegiv/polysite/internal/model"
	"github.com/olegiv/polysite/internal/util"
)

//go:embed data/catalog.yaml
var embeddedDataset []byte

// DefaultDelay is the simulated latency before data resolves.
const DefaultDelay = 300 * time.Millisecond

// ErrNotFound is returned when a product or post does not exist.
var ErrNotFound = errors.New("catalog: not found")

// Dataset is the full catalog snapshot.
type Dataset struct {
	Products []model.Product  `yaml:"products"`
	Posts    []model.BlogPost `yaml:"posts"`
}

// Parse decodes a YAML dataset and checks that ids and slugs are unique.
// A missing slug is derived from the name.
func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("decoding dataset: %w", err)
	}

	ids := make(map[string]bool, len(ds.Products))
	slugs := make(map[string]bool, len(ds.Products))
	for i := range ds.Products {
		p := &ds.Products[i]
		if p.Slug == "" {
			p.Slug = deriveSlug(p.Name)
		}
		if p.ID == "" || p.Slug == "" {
			return nil, fmt.Errorf("product %q: id and slug are required", p.Name.EN)
		}
		if !util.IsValidSlug(p.Slug) {
			return nil, fmt.Errorf("product %q: invalid slug %q", p.ID, p.Slug)
		}
		if ids[p.ID] {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		if slugs[p.Slug] {
			return nil, fmt.Errorf("duplicate product slug %q", p.Slug)
		}
		ids[p.ID] = true
		slugs[p.Slug] = true
	}

	postSlugs := make(map[string]bool, len(ds.Posts))
	for i := range ds.Posts {
		b := &ds.Posts[i]
		if b.Slug == "" {
			b.Slug = deriveSlug(b.Title)
		}
		if b.Slug == "" {
			return nil, fmt.Errorf("post %q: slug is required", b.Title.EN)
		}
		if !util.IsValidSlug(b.Slug) {
			return nil, fmt.Errorf("post %q: invalid slug %q", b.Title.EN, b.Slug)
		}
		if postSlugs[b.Slug] {
			return nil, fmt.Errorf("duplicate post slug %q", b.Slug)
		}
		postSlugs[b.Slug] = true
	}

	return &ds, nil
}

func deriveSlug(name model.Text) string {
	if s := util.Slugify(name.EN); s != "" {
		return s
	}
	return util.Slugify(name.AR)
}

// Embedded returns the dataset compiled into the binary.
func Embedded() (*Dataset, error) {
	return Parse(embeddedDataset)
}

// Loader produces a fresh dataset on refresh.
type Loader func() (*Dataset, error)

// Source is a read-only view of the dataset with a simulated delay on
// every read. Refresh swaps the snapshot atomically.
type Source struct {
	mu       sync.RWMutex
	data     *Dataset
	loaded   time.Time
	load     Loader
	delay    time.Duration
	logger   *slog.Logger
	onReload []func(*Dataset)
}

// NewSource loads the initial snapshot from load.
func NewSource(load Loader, delay time.Duration, logger *slog.Logger) (*Source, error) {
	if load == nil {
		load = Embedded
	}
	ds, err := load()
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return &Source{
		data:   ds,
		loaded: time.Now(),
		load:   load,
		delay:  delay,
		logger: logger,
	}, nil
}

// OnReload registers fn to be called with each new snapshot.
func (s *Source) OnReload(fn func(*Dataset)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onReload = append(s.onReload, fn)
}

// Refresh reloads the dataset. On error the previous snapshot is kept.
func (s *Source) Refresh(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ds, err := s.load()
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("catalog refresh failed, keeping previous snapshot", "error", err)
		}
		return fmt.Errorf("refreshing catalog: %w", err)
	}

	s.mu.Lock()
	s.data = ds
	s.loaded = time.Now()
	hooks := append([]func(*Dataset){}, s.onReload...)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn(ds)
	}
	if s.logger != nil {
		s.logger.Info("catalog refreshed", "products", len(ds.Products), "posts", len(ds.Posts))
	}
	return nil
}

// Snapshot returns the current dataset without delay.
func (s *Source) Snapshot() *Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// LoadedAt returns when the current snapshot was loaded.
func (s *Source) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

func (s *Source) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Products returns all products after the simulated delay.
func (s *Source) Products(ctx context.Context) ([]model.Product, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.Snapshot().Products, nil
}

// Posts returns all blog posts after the simulated delay.
func (s *Source) Posts(ctx context.Context) ([]model.BlogPost, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.Snapshot().Posts, nil
}

// Product returns the product with the given id.
func (s *Source) Product(ctx context.Context, id string) (model.Product, error) {
	if err := s.wait(ctx); err != nil {
		return model.Product{}, err
	}
	for _, p := range s.Snapshot().Products {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Product{}, ErrNotFound
}

// ProductBySlug returns the product with the given slug.
func (s *Source) ProductBySlug(ctx context.Context, slug string) (model.Product, error) {
	if err := s.wait(ctx); err != nil {
		return model.Product{}, err
	}
	for _, p := range s.Snapshot().Products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return model.Product{}, ErrNotFound
}
