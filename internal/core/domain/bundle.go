package domain

import "time"

// BundleVersion is the persisted knowledge-base layout version.
const BundleVersion = "1"

// Manifest describes a persisted knowledge base for staleness and
// compatibility checks.
type Manifest struct {
	// Model is the embedding model identifier every vector in the bundle
	// was produced with. Mixing models in one bundle is rejected.
	Model string

	// Dimensions is the shared vector dimensionality.
	Dimensions int

	// BuiltAt is the build timestamp.
	BuiltAt time.Time

	// Version is the bundle layout version tag.
	Version string
}

// IndexEntry is a vector paired with the chunk it was embedded from.
// The vector index owns all entries; chunks are immutable after insertion.
type IndexEntry struct {
	// Chunk is the payload returned on a nearest-neighbour hit.
	Chunk Chunk

	// Vector is the embedding of the chunk's content.
	Vector []float32
}

// Snapshot is a complete, consistent view of a knowledge base: the
// manifest plus every index entry, in insertion order. It is the unit
// of persistence and of atomic swap during rebuilds.
type Snapshot struct {
	Manifest Manifest
	Entries  []IndexEntry
}
