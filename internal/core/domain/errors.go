package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrIngestion indicates a document could not be read or extracted.
	// A build aborts for that document; other documents continue.
	ErrIngestion = errors.New("document ingestion failed")

	// ErrConfig indicates an invalid chunking or index configuration.
	// Configuration errors fail fast at startup and are never clamped.
	ErrConfig = errors.New("invalid configuration")

	// ErrEmbeddingService indicates the embedding provider failed after
	// exhausting retries. The caller never receives substitute vectors.
	ErrEmbeddingService = errors.New("embedding service unavailable")

	// ErrGenerationService indicates the generation provider failed after
	// exhausting retries.
	ErrGenerationService = errors.New("generation service unavailable")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoKnowledgeBase indicates no prebuilt knowledge base is loaded.
	ErrNoKnowledgeBase = errors.New("knowledge base not loaded")
)

// DimensionMismatchError indicates a vector's dimensionality does not
// match the index. This is fatal: it means a corrupted or mismatched
// index and must not be worked around.
type DimensionMismatchError struct {
	// Want is the index dimensionality.
	Want int

	// Got is the offending vector's dimensionality.
	Got int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("vector dimension mismatch: index expects %d, got %d", e.Want, e.Got)
}

// ModelMismatchError indicates an embedding produced by a different model
// than the one the index was built with.
type ModelMismatchError struct {
	// Want is the index's embedding model identifier.
	Want string

	// Got is the offending model identifier.
	Got string
}

func (e *ModelMismatchError) Error() string {
	return fmt.Sprintf("embedding model mismatch: index built with %q, got %q", e.Want, e.Got)
}

// SynthesisParseError indicates the model output did not match the
// structured answer schema even after one reformatting retry. The raw
// output is attached for diagnosis; no guessed answer is returned.
type SynthesisParseError struct {
	// RawOutput is the unparsed model response from the final attempt.
	RawOutput string

	// Err is the underlying parse or validation failure.
	Err error
}

func (e *SynthesisParseError) Error() string {
	return fmt.Sprintf("structured answer did not match schema: %v", e.Err)
}

func (e *SynthesisParseError) Unwrap() error {
	return e.Err
}
