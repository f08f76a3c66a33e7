// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package basket

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/polysite/internal/model"
	"github.com/olegiv/polysite/internal/storage"
)

var (
	rHDPE = model.RFQProduct{ID: "p1", Name: "rHDPE", Type: "HDPE"}
	pp    = model.RFQProduct{ID: "p5", Name: "PP Raffia", Type: "PP", Grade: "H030SG"}
)

func TestScenarioAddDedupeRemove(t *testing.T) {
	ctx := context.Background()
	b := Load(ctx, storage.NewMemory(), nil)
	require.True(t, b.IsEmpty())

	assert.True(t, b.Add(ctx, rHDPE))
	assert.False(t, b.Add(ctx, model.RFQProduct{ID: "p1", Name: "Something else", Type: "LDPE"}))
	require.Equal(t, 1, b.Len())
	assert.Equal(t, "rHDPE", b.Items()[0].Name, "first write wins")

	assert.True(t, b.Remove(ctx, "p1"))
	assert.Equal(t, 0, b.Len())
}

func TestRemoveMissingIsNoop(t *testing.T) {
	ctx := context.Background()
	b := New(storage.NewMemory(), nil)
	b.Add(ctx, rHDPE)

	assert.False(t, b.Remove(ctx, "nope"))
	assert.Equal(t, []model.RFQProduct{rHDPE}, b.Items())
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()

	b := Load(ctx, store, nil)
	b.Add(ctx, rHDPE)
	b.Add(ctx, pp)

	reloaded := Load(ctx, store, nil)
	assert.Equal(t, b.Items(), reloaded.Items())
	assert.True(t, reloaded.Contains("p5"))
}

func TestRemovePreservesOrder(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	b := Load(ctx, store, nil)
	third := model.RFQProduct{ID: "p8", Name: "rPET", Type: "PET"}
	b.Add(ctx, rHDPE)
	b.Add(ctx, pp)
	b.Add(ctx, third)

	b.Remove(ctx, "p5")

	assert.Equal(t, []model.RFQProduct{rHDPE, third}, Load(ctx, store, nil).Items())
}

func TestClearPersistsEmptyList(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	b := Load(ctx, store, nil)
	b.Add(ctx, rHDPE)

	b.Clear(ctx)

	assert.True(t, b.IsEmpty())
	raw, ok := store.Raw(StorageKey)
	require.True(t, ok, "clear keeps the record")
	assert.JSONEq(t, `[]`, string(raw))
	assert.True(t, Load(ctx, store, nil).IsEmpty())
}

func TestResetStorageDeletesRecord(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	b := Load(ctx, store, nil)
	b.Add(ctx, rHDPE)

	b.ResetStorage(ctx)

	assert.True(t, b.IsEmpty())
	_, ok := store.Raw(StorageKey)
	assert.False(t, ok)
}

func TestWriteFailuresKeepMemoryAuthoritative(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	b := Load(ctx, store, nil)
	b.Add(ctx, rHDPE)

	store.FailWrites(errors.New("quota exceeded"))
	assert.True(t, b.Add(ctx, pp))
	assert.Equal(t, 2, b.Len())

	// the reload sees the last successful write
	assert.Equal(t, []model.RFQProduct{rHDPE}, Load(ctx, store, nil).Items())

	b.ResetStorage(ctx)
	assert.True(t, b.IsEmpty())
}

func TestItemsReturnsCopy(t *testing.T) {
	ctx := context.Background()
	b := New(storage.NewMemory(), nil)
	b.Add(ctx, rHDPE)

	items := b.Items()
	items[0].Name = "changed"

	assert.Equal(t, "rHDPE", b.Items()[0].Name)
}

func TestLoadCorrupt(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"json string", `"hello"`},
		{"not json", `{{{`},
		{"object", `{"id":"p1"}`},
		{"null", `null`},
		{"number array", `[1,2,3]`},
		{"null element", `[null]`},
		{"missing name", `[{"id":"p1","type":"HDPE"}]`},
		{"numeric id", `[{"id":1,"name":"x","type":"HDPE"}]`},
		{"empty id", `[{"id":"","name":"x","type":"T"}]`},
		{"null type", `[{"id":"p1","name":"x","type":null}]`},
		{"bad grade", `[{"id":"p1","name":"x","type":"HDPE","grade":5}]`},
		{"duplicate id", `[{"id":"p1","name":"a","type":"T"},{"id":"p1","name":"b","type":"T"}]`},
		{"one bad line", `[{"id":"p1","name":"a","type":"T"},{"id":"p2"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemory()
			store.Put(StorageKey, []byte(tt.raw))

			b := Load(context.Background(), store, nil)
			assert.True(t, b.IsEmpty())
		})
	}
}

func TestLoadAcceptsWellFormed(t *testing.T) {
	store := storage.NewMemory()
	store.Put(StorageKey, []byte(`[
		{"id":"p1","name":"rHDPE","type":"HDPE"},
		{"id":"p5","name":"PP Raffia","type":"PP","grade":"H030SG","extra":true},
		{"id":"p7","name":"PP Copolymer","type":"PP","grade":null}
	]`))

	b := Load(context.Background(), store, nil)
	require.Equal(t, 3, b.Len())
	assert.Equal(t, "H030SG", b.Items()[1].Grade)
	assert.Equal(t, "", b.Items()[2].Grade)
}

func TestLoadUnavailableStore(t *testing.T) {
	b := Load(context.Background(), brokenStore{}, nil)
	assert.True(t, b.IsEmpty())

	b.Add(context.Background(), rHDPE)
	assert.Equal(t, 1, b.Len())
}

func TestEncodeNil(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode([]byte(`"x"`))
	assert.ErrorIs(t, err, ErrNotArray)

	_, err = Decode([]byte(`[{"id":"p1","type":"T"}]`))
	assert.ErrorIs(t, err, ErrInvalidField)

	_, err = Decode([]byte(`[{"id":"","name":"a","type":"T"}]`))
	assert.ErrorIs(t, err, ErrInvalidField)

	_, err = Decode([]byte(`[{"id":"p1","name":"a","type":"T"},{"id":"p1","name":"a","type":"T"}]`))
	assert.ErrorIs(t, err, ErrDuplicateID)
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) ([]byte, storage.Result) {
	return nil, storage.Failure(storage.ErrUnavailable)
}

func (brokenStore) Set(context.Context, string, []byte) storage.Result {
	return storage.Failure(storage.ErrUnavailable)
}

func (brokenStore) Delete(context.Context, string) storage.Result {
	return storage.Failure(storage.ErrUnavailable)
}
