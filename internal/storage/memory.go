// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package storage

import (
	"context"
	"sync"
)

// Memory is an in-process Store. A non-nil failure error makes every
// write fail, which is how tests simulate a full or broken backend.
type Memory struct {
	mu      sync.Mutex
	records map[string][]byte
	failErr error
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string][]byte)}
}

// FailWrites makes subsequent Set and Delete calls fail with err. A nil err
// restores normal behavior.
func (m *Memory) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
}

// Get implements Store.
func (m *Memory) Get(_ context.Context, key string) ([]byte, Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.records[key]
	if !ok {
		return nil, Success()
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, Success()
}

// Set implements Store.
func (m *Memory) Set(_ context.Context, key string, value []byte) Result {
	return guard("set", key, func() error {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.failErr != nil {
			return m.failErr
		}
		v := make([]byte, len(value))
		copy(v, value)
		m.records[key] = v
		return nil
	})
}

// Delete implements Store.
func (m *Memory) Delete(_ context.Context, key string) Result {
	return guard("delete", key, func() error {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.failErr != nil {
			return m.failErr
		}
		delete(m.records, key)
		return nil
	})
}

// Raw returns the stored bytes and whether the key exists.
func (m *Memory) Raw(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.records[key]
	return v, ok
}

// Put writes raw bytes directly, bypassing failure injection.
func (m *Memory) Put(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = value
}
