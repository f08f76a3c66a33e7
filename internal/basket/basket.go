// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package basket implements the RFQ basket: an ordered list of products,
// unique by id, written through to a per-visitor store after every change.
//
// The in-memory list is authoritative. Store failures are logged at debug
// level and otherwise ignored.
package basket

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/olegiv/polysite/internal/model"
	"github.com/olegiv/polysite/internal/storage"
)

// StorageKey is the versioned record key. A schema change gets a new key.
const StorageKey = "rfq_products_v1"

// Basket is one visitor's RFQ basket. It is not safe for concurrent use;
// build one per request.
type Basket struct {
	items  []model.RFQProduct
	store  storage.Store
	logger *slog.Logger
}

// New creates an empty basket over store without reading it.
func New(store storage.Store, logger *slog.Logger) *Basket {
	if logger == nil {
		logger = slog.Default()
	}
	return &Basket{store: store, logger: logger}
}

// Load creates a basket from the stored record. An absent, unreadable or
// malformed record yields an empty basket.
func Load(ctx context.Context, store storage.Store, logger *slog.Logger) *Basket {
	b := New(store, logger)

	data, res := store.Get(ctx, StorageKey)
	if !res.OK {
		b.logger.Debug("basket storage unavailable", "error", res.Err)
		return b
	}
	if data == nil {
		return b
	}

	items, err := Decode(data)
	if err != nil {
		b.logger.Debug("discarding stored basket", "error", err)
		return b
	}
	b.items = items
	return b
}

// Items returns a copy of the basket lines in insertion order.
func (b *Basket) Items() []model.RFQProduct {
	out := make([]model.RFQProduct, len(b.items))
	copy(out, b.items)
	return out
}

// Len returns the number of lines.
func (b *Basket) Len() int {
	return len(b.items)
}

// IsEmpty reports whether the basket has no lines.
func (b *Basket) IsEmpty() bool {
	return len(b.items) == 0
}

// Contains reports whether a line with id exists.
func (b *Basket) Contains(id string) bool {
	return b.indexOf(id) >= 0
}

func (b *Basket) indexOf(id string) int {
	for i, p := range b.items {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Add appends p unless a line with the same id exists, in which case the
// existing line is kept unchanged. It reports whether p was added.
func (b *Basket) Add(ctx context.Context, p model.RFQProduct) bool {
	if b.Contains(p.ID) {
		return false
	}
	b.items = append(b.items, p)
	b.persist(ctx)
	return true
}

// Remove deletes the line with id. It reports whether a line was removed.
func (b *Basket) Remove(ctx context.Context, id string) bool {
	i := b.indexOf(id)
	if i < 0 {
		return false
	}
	b.items = append(b.items[:i:i], b.items[i+1:]...)
	b.persist(ctx)
	return true
}

// Clear empties the basket. The stored record becomes an empty list.
func (b *Basket) Clear(ctx context.Context) {
	b.items = nil
	b.persist(ctx)
}

// ResetStorage empties the basket and deletes the stored record.
func (b *Basket) ResetStorage(ctx context.Context) {
	b.items = nil
	if res := b.store.Delete(ctx, StorageKey); !res.OK {
		b.logger.Debug("basket reset not persisted", "error", res.Err)
	}
}

func (b *Basket) persist(ctx context.Context) {
	data, err := Encode(b.items)
	if err != nil {
		b.logger.Debug("basket encode failed", "error", err)
		return
	}
	if res := b.store.Set(ctx, StorageKey, data); !res.OK {
		b.logger.Debug("basket write not persisted", "error", res.Err)
	}
}

// Encode serializes lines as a JSON array. nil encodes as [].
func Encode(items []model.RFQProduct) ([]byte, error) {
	if items == nil {
		items = []model.RFQProduct{}
	}
	return json.Marshal(items)
}

// Shape errors returned by Decode.
var (
	ErrNotArray     = errors.New("basket record is not an array")
	ErrInvalidField = errors.New("basket line has an invalid field")
	ErrDuplicateID  = errors.New("basket line id is duplicated")
)

// Decode parses a stored record. Every line must be an object with string
// id, name and type; grade is optional but must be a string when present.
// Any violation rejects the whole record.
func Decode(data []byte) ([]model.RFQProduct, error) {
	var raw []map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotArray, err)
	}
	if raw == nil {
		// JSON null
		return nil, ErrNotArray
	}

	items := make([]model.RFQProduct, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for i, obj := range raw {
		if obj == nil {
			return nil, fmt.Errorf("%w: line %d is null", ErrInvalidField, i)
		}
		var p model.RFQProduct
		var err error
		if p.ID, err = requiredString(obj, "id"); err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		if p.ID == "" {
			return nil, fmt.Errorf("line %d: %w: id empty", i, ErrInvalidField)
		}
		if p.Name, err = requiredString(obj, "name"); err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		if p.Type, err = requiredString(obj, "type"); err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		if v, ok := obj["grade"]; ok && !isNull(v) {
			if err := json.Unmarshal(v, &p.Grade); err != nil {
				return nil, fmt.Errorf("line %d: %w: grade", i, ErrInvalidField)
			}
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("line %d: %w: %s", i, ErrDuplicateID, p.ID)
		}
		seen[p.ID] = struct{}{}
		items = append(items, p)
	}
	return items, nil
}

func requiredString(obj map[string]json.RawMessage, field string) (string, error) {
	v, ok := obj[field]
	if !ok || isNull(v) {
		return "", fmt.Errorf("%w: %s missing", ErrInvalidField, field)
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidField, field)
	}
	return s, nil
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}
