package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearbrook-labs/claimlens/internal/core/domain"
)

func testSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Manifest: domain.Manifest{
			Model:      "text-embedding-004",
			Dimensions: 3,
			BuiltAt:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			Version:    domain.BundleVersion,
		},
		Entries: []domain.IndexEntry{
			{
				Chunk: domain.Chunk{
					ID: "c1", DocumentID: "d1", Position: 0,
					Content: "knee surgery is covered after 90 days",
					Start:   0, End: 37,
				},
				Vector: []float32{0.1, 0.2, 0.3},
			},
			{
				Chunk: domain.Chunk{
					ID: "c2", DocumentID: "d1", Position: 1,
					Content: "pre-existing conditions are excluded",
					Start:   30, End: 66, Overlap: 7,
				},
				Vector: []float32{-0.4, 0.5, 0.6},
			},
		},
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "knowledge.db"))
	require.NoError(t, err)
	return store
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	snap := testSnapshot()

	require.NoError(t, store.Save(ctx, snap))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, snap.Manifest.Model, loaded.Manifest.Model)
	assert.Equal(t, snap.Manifest.Dimensions, loaded.Manifest.Dimensions)
	assert.Equal(t, snap.Manifest.Version, loaded.Manifest.Version)
	assert.True(t, snap.Manifest.BuiltAt.Equal(loaded.Manifest.BuiltAt))

	require.Len(t, loaded.Entries, 2)
	for i := range snap.Entries {
		assert.Equal(t, snap.Entries[i].Chunk, loaded.Entries[i].Chunk)
		assert.Equal(t, snap.Entries[i].Vector, loaded.Entries[i].Vector)
	}
}

func TestLoad_MissingBundle(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load(context.Background())
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestSave_ReplacesPreviousBundle(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	first := testSnapshot()
	require.NoError(t, store.Save(ctx, first))

	second := testSnapshot()
	second.Entries = second.Entries[:1]
	second.Manifest.BuiltAt = first.Manifest.BuiltAt.Add(time.Hour)
	require.NoError(t, store.Save(ctx, second))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded.Entries, 1)
	assert.True(t, loaded.Manifest.BuiltAt.After(first.Manifest.BuiltAt))
}

// A failed save must leave the previous bundle untouched.
func TestSave_FailureKeepsOldBundle(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	good := testSnapshot()
	require.NoError(t, store.Save(ctx, good))

	// Duplicate chunk IDs violate the entries unique constraint.
	bad := testSnapshot()
	bad.Entries = append(bad.Entries, bad.Entries[0])
	require.Error(t, store.Save(ctx, bad))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, loaded.Entries, 2)

	// No temp file left behind.
	_, statErr := os.Stat(store.Path() + ".tmp")
	assert.True(t, os.IsNotExist(statErr))
}

func TestSave_EmptySnapshot(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	snap := &domain.Snapshot{
		Manifest: domain.Manifest{Model: "m", Dimensions: 4, BuiltAt: time.Now()},
	}
	require.NoError(t, store.Save(ctx, snap))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded.Entries)
}
