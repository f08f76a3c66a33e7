// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package storage

import (
	"context"
	"fmt"

	"github.com/alexedwards/scs/v2"
)

// Session stores records in the visitor's scs session. The request context
// must carry a loaded session (scs LoadAndSave middleware); without one scs
// panics, which surfaces here as a failed Result.
type Session struct {
	sm *scs.SessionManager
}

var _ Store = (*Session)(nil)

// NewSession creates a session-backed store.
func NewSession(sm *scs.SessionManager) *Session {
	return &Session{sm: sm}
}

// Get implements Store.
func (s *Session) Get(ctx context.Context, key string) (data []byte, res Result) {
	res = guard("get", key, func() error {
		v := s.sm.Get(ctx, key)
		if v == nil {
			return nil
		}
		b, ok := v.([]byte)
		if !ok {
			return fmt.Errorf("unexpected session value type %T", v)
		}
		data = b
		return nil
	})
	if !res.OK {
		data = nil
	}
	return data, res
}

// Set implements Store.
func (s *Session) Set(ctx context.Context, key string, value []byte) Result {
	return guard("set", key, func() error {
		s.sm.Put(ctx, key, value)
		return nil
	})
}

// Delete implements Store.
func (s *Session) Delete(ctx context.Context, key string) Result {
	return guard("delete", key, func() error {
		s.sm.Remove(ctx, key)
		return nil
	})
}
