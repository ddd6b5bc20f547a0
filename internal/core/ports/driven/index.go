package driven

import (
	"context"

	"github.com/clearbrook-labs/claimlens/internal/core/domain"
)

// VectorIndex stores (vector, chunk) entries and supports k-nearest
// neighbour similarity search. Similarity semantics (cosine) are fixed
// per index instance and documented by the implementation.
//
// An index is read-shared without locking during query serving; only the
// builder creates entries, and rebuilds swap in a whole new index rather
// than mutating one in place.
type VectorIndex interface {
	// Insert adds an entry. Entries whose vector dimensionality or
	// embedding model do not match the index are rejected with
	// domain.DimensionMismatchError or domain.ModelMismatchError.
	Insert(ctx context.Context, entry domain.IndexEntry) error

	// Search returns up to k chunks ranked by descending similarity to
	// the query vector. Ties are broken by insertion order (earlier
	// wins). An empty index yields an empty result, not an error; a
	// query vector of the wrong dimensionality fails with
	// domain.DimensionMismatchError.
	Search(ctx context.Context, query []float32, k int) ([]domain.ScoredChunk, error)

	// Len returns the number of entries.
	Len() int

	// Dimensions returns the shared vector dimensionality.
	Dimensions() int

	// ModelName returns the embedding model identifier the index was
	// built with.
	ModelName() string

	// Snapshot exports the manifest and every entry in insertion order.
	Snapshot() *domain.Snapshot
}
