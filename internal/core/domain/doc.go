// Package domain defines the core business entities for claimlens.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: Extracted text from an ingested policy document
//   - Chunk: An embeddable span of a document, with citation offsets
//   - RetrievalResult: Ranked, deduplicated retrieval candidates
//   - StructuredAnswer: The fixed adjudication response schema
//   - Snapshot: A persisted knowledge-base bundle
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
