// Package flat provides an exact, in-memory vector index.
//
// Similarity is cosine similarity, computed against every entry. For the
// knowledge-base sizes this pipeline targets (one policy set, thousands
// of chunks) exhaustive search is fast, exact, and fully deterministic:
// equal scores are returned in insertion order.
package flat

import (
	"context"
	"math"
	"sort"

	"github.com/clearbrook-labs/claimlens/internal/core/domain"
	"github.com/clearbrook-labs/claimlens/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index stores entries for one embedding model and dimensionality.
//
// An Index is written by a single builder and then read-shared without
// locking: all inserts happen before the index is published to readers,
// and rebuilds swap in a fresh Index rather than mutating this one.
type Index struct {
	model      string
	dimensions int
	entries    []domain.IndexEntry
}

// New creates an empty index for the given embedding model and
// dimensionality.
func New(model string, dimensions int) *Index {
	return &Index{
		model:      model,
		dimensions: dimensions,
	}
}

// FromSnapshot rebuilds an index from a persisted snapshot, preserving
// insertion order. Entries that do not match the manifest's
// dimensionality are rejected.
func FromSnapshot(snap *domain.Snapshot) (*Index, error) {
	idx := New(snap.Manifest.Model, snap.Manifest.Dimensions)
	for _, entry := range snap.Entries {
		if err := idx.Insert(context.Background(), entry); err != nil {
			return nil, err
		}
	}
	return idx, nil
}

// Insert adds an entry. The vector must match the index dimensionality.
func (idx *Index) Insert(_ context.Context, entry domain.IndexEntry) error {
	if len(entry.Vector) != idx.dimensions {
		return &domain.DimensionMismatchError{Want: idx.dimensions, Got: len(entry.Vector)}
	}
	idx.entries = append(idx.entries, entry)
	return nil
}

// Search returns up to k chunks ranked by descending cosine similarity.
// Ties keep insertion order. An empty index returns an empty slice.
func (idx *Index) Search(_ context.Context, query []float32, k int) ([]domain.ScoredChunk, error) {
	if len(idx.entries) == 0 {
		return []domain.ScoredChunk{}, nil
	}
	if len(query) != idx.dimensions {
		return nil, &domain.DimensionMismatchError{Want: idx.dimensions, Got: len(query)}
	}
	if k <= 0 {
		return []domain.ScoredChunk{}, nil
	}

	scored := make([]domain.ScoredChunk, len(idx.entries))
	for i := range idx.entries {
		scored[i] = domain.ScoredChunk{
			Chunk: idx.entries[i].Chunk,
			Score: cosineSimilarity(query, idx.entries[i].Vector),
		}
	}

	// Stable sort preserves insertion order among equal scores.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}

// Len returns the number of entries.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Dimensions returns the shared vector dimensionality.
func (idx *Index) Dimensions() int {
	return idx.dimensions
}

// ModelName returns the embedding model identifier.
func (idx *Index) ModelName() string {
	return idx.model
}

// Snapshot exports the manifest and every entry in insertion order.
// The returned snapshot shares entry slices with the index; treat it as
// read-only.
func (idx *Index) Snapshot() *domain.Snapshot {
	entries := make([]domain.IndexEntry, len(idx.entries))
	copy(entries, idx.entries)

	return &domain.Snapshot{
		Manifest: domain.Manifest{
			Model:      idx.model,
			Dimensions: idx.dimensions,
			Version:    domain.BundleVersion,
		},
		Entries: entries,
	}
}

// cosineSimilarity computes the cosine similarity between two vectors of
// equal length. Zero vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
