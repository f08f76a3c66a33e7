// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package search

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/olegiv/polysite/internal/cache"
	"github.com/olegiv/polysite/internal/locale"
	"github.com/olegiv/polysite/internal/model"
)

// ProductLister supplies the products to index.
type ProductLister interface {
	Products(ctx context.Context) ([]model.Product, error)
}

// Service keeps one index per language in a cache and answers queries.
type Service struct {
	source  ProductLister
	indexes *cache.TypedCache[[]Item]
	logger  *slog.Logger

	mu sync.Mutex // serializes rebuilds
}

// NewService creates a search service. Indexes expire after ttl and are
// rebuilt from source on the next query.
func NewService(source ProductLister, c cache.Cacher, ttl time.Duration, logger *slog.Logger) *Service {
	return &Service{
		source:  source,
		indexes: cache.NewTypedCache[[]Item](c, cache.NamespaceSearch+"index:", ttl),
		logger:  logger,
	}
}

// Rebuild replaces the cached indexes for both languages from products.
func (s *Service) Rebuild(ctx context.Context, products []model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, lang := range []locale.Language{locale.English, locale.Arabic} {
		idx := BuildIndex(products, lang)
		if err := s.indexes.Set(ctx, string(lang), &idx); err != nil && s.logger != nil {
			s.logger.Warn("failed to cache search index", "language", lang, "error", err)
		}
	}
	if s.logger != nil {
		s.logger.Debug("search indexes rebuilt", "products", len(products))
	}
}

// Index returns the index for lang, building it when it is not cached.
func (s *Service) Index(ctx context.Context, lang locale.Language) ([]Item, error) {
	idx, err := s.indexes.GetOrSet(ctx, string(lang), func() (*[]Item, error) {
		products, err := s.source.Products(ctx)
		if err != nil {
			return nil, err
		}
		built := BuildIndex(products, lang)
		return &built, nil
	})
	if err != nil {
		return nil, err
	}
	return *idx, nil
}

// Query runs Search over the index for lang.
func (s *Service) Query(ctx context.Context, query string, lang locale.Language) ([]Result, error) {
	idx, err := s.Index(ctx, lang)
	if err != nil {
		return nil, err
	}
	return Search(query, idx), nil
}
