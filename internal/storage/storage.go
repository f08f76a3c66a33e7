// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package storage provides the per-visitor key/value record stores the RFQ
// basket persists through. Every operation reports its outcome as a Result
// instead of panicking, so callers decide whether a failure matters.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnavailable marks a backend that could not serve the operation.
var ErrUnavailable = errors.New("storage unavailable")

// Result is the outcome of a storage operation.
type Result struct {
	OK  bool
	Err error
}

// Success returns a successful result.
func Success() Result {
	return Result{OK: true}
}

// Failure wraps err into a failed result.
func Failure(err error) Result {
	if err == nil {
		err = ErrUnavailable
	}
	return Result{Err: err}
}

// Store is a durable per-visitor record store.
type Store interface {
	// Get returns the stored bytes. A missing key yields nil data with a
	// successful result.
	Get(ctx context.Context, key string) ([]byte, Result)
	Set(ctx context.Context, key string, value []byte) Result
	Delete(ctx context.Context, key string) Result
}

// guard runs fn and converts both a returned error and a panic into a
// failed Result.
func guard(op, key string, fn func() error) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Failure(fmt.Errorf("%w: %s %q panicked: %v", ErrUnavailable, op, key, r))
		}
	}()
	if err := fn(); err != nil {
		return Failure(fmt.Errorf("%s %q: %w", op, key, err))
	}
	return Success()
}
