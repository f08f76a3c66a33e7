// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging wires slog for the service and keeps recent warnings in
// memory for the health endpoint.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Categories attached to recent entries.
const (
	CategoryBasket  = "basket"
	CategoryContact = "contact"
	CategoryCatalog = "catalog"
	CategorySearch  = "search"
	CategoryCache   = "cache"
	CategoryHTTP    = "http"
	CategorySystem  = "system"
)

// DefaultCapacity is the number of entries kept by NewRecentHandler.
const DefaultCapacity = 50

// Entry is a captured log record.
type Entry struct {
	Time     time.Time         `json:"time"`
	Level    string            `json:"level"`
	Category string            `json:"category"`
	Message  string            `json:"message"`
	Attrs    map[string]string `json:"attrs,omitempty"`
}

// ring is the shared buffer behind a handler and its derived handlers.
type ring struct {
	mu      sync.Mutex
	entries []Entry
	next    int
	full    bool
}

func (r *ring) add(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[r.next] = e
	r.next = (r.next + 1) % len(r.entries)
	if r.next == 0 {
		r.full = true
	}
}

// snapshot returns entries newest first.
func (r *ring) snapshot() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := r.next
	if r.full {
		n = len(r.entries)
	}
	out := make([]Entry, 0, n)
	for i := 1; i <= n; i++ {
		idx := (r.next - i + len(r.entries)) % len(r.entries)
		out = append(out, r.entries[idx])
	}
	return out
}

// RecentHandler wraps another handler and also records WARN and above in a
// bounded in-memory buffer.
type RecentHandler struct {
	inner  slog.Handler
	buf    *ring
	level  slog.Level
	attrs  []slog.Attr
	prefix string
}

// NewRecentHandler wraps inner, keeping up to capacity entries.
func NewRecentHandler(inner slog.Handler, capacity int) *RecentHandler {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &RecentHandler{
		inner: inner,
		buf:   &ring{entries: make([]Entry, capacity)},
		level: slog.LevelWarn,
	}
}

// Enabled implements slog.Handler.
func (h *RecentHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *RecentHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}
	if r.Level >= h.level {
		h.buf.add(h.entry(r))
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *RecentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	cp := *h
	cp.inner = h.inner.WithAttrs(attrs)
	cp.attrs = append(append([]slog.Attr{}, h.attrs...), qualify(h.prefix, attrs)...)
	return &cp
}

// WithGroup implements slog.Handler.
func (h *RecentHandler) WithGroup(name string) slog.Handler {
	cp := *h
	cp.inner = h.inner.WithGroup(name)
	cp.prefix = h.prefix + name + "."
	return &cp
}

// Recent returns the captured entries, newest first.
func (h *RecentHandler) Recent() []Entry {
	return h.buf.snapshot()
}

func qualify(prefix string, attrs []slog.Attr) []slog.Attr {
	if prefix == "" {
		return attrs
	}
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = slog.Attr{Key: prefix + a.Key, Value: a.Value}
	}
	return out
}

func (h *RecentHandler) entry(r slog.Record) Entry {
	e := Entry{
		Time:    r.Time,
		Level:   r.Level.String(),
		Message: r.Message,
		Attrs:   make(map[string]string, len(h.attrs)+r.NumAttrs()),
	}
	for _, a := range h.attrs {
		e.Attrs[a.Key] = a.Value.String()
	}
	r.Attrs(func(a slog.Attr) bool {
		e.Attrs[h.prefix+a.Key] = a.Value.String()
		return true
	})
	if c, ok := e.Attrs["category"]; ok {
		e.Category = c
		delete(e.Attrs, "category")
	} else {
		e.Category = inferCategory(r.Message)
	}
	if len(e.Attrs) == 0 {
		e.Attrs = nil
	}
	return e
}

// inferCategory guesses a category from the message text.
func inferCategory(msg string) string {
	msg = strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "basket"):
		return CategoryBasket
	case strings.Contains(msg, "quote") || strings.Contains(msg, "contact"):
		return CategoryContact
	case strings.Contains(msg, "catalog"):
		return CategoryCatalog
	case strings.Contains(msg, "search") || strings.Contains(msg, "index"):
		return CategorySearch
	case strings.Contains(msg, "cache") || strings.Contains(msg, "redis"):
		return CategoryCache
	case strings.Contains(msg, "request") || strings.Contains(msg, "rate limit"):
		return CategoryHTTP
	default:
		return CategorySystem
	}
}

// ParseLevel maps a config string to a level. Unknown values mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup builds the process logger: a text handler on w at level, wrapped
// in a RecentHandler.
func Setup(w io.Writer, level string) (*slog.Logger, *RecentHandler) {
	text := slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	recent := NewRecentHandler(text, DefaultCapacity)
	return slog.New(recent), recent
}
