package driving

import (
	"context"

	"github.com/clearbrook-labs/claimlens/internal/core/domain"
)

// BuildInput names one document to ingest into the knowledge base.
type BuildInput struct {
	// Origin is the document's source path or name, used for citations.
	Origin string

	// Format is the declared source format.
	Format domain.Format

	// Content is the raw document payload.
	Content []byte
}

// DocumentError records a per-document ingestion failure during a build.
type DocumentError struct {
	// Origin identifies the failed document.
	Origin string

	// Err is the ingestion failure.
	Err error
}

// BuildReport summarises a completed build.
type BuildReport struct {
	// Documents is the number of documents ingested successfully.
	Documents int

	// Chunks is the number of chunks embedded and indexed.
	Chunks int

	// Manifest describes the persisted bundle.
	Manifest domain.Manifest

	// Failed lists per-document ingestion failures that did not abort
	// the build.
	Failed []DocumentError
}

// BuildService constructs and persists knowledge bases.
type BuildService interface {
	// Build runs Loader -> Chunker -> Embedder -> Index for every input,
	// in input order, then persists the bundle atomically. Ingestion
	// failures are collected per document; an embedding failure aborts
	// the whole build without persisting anything.
	Build(ctx context.Context, inputs []BuildInput) (*BuildReport, error)
}
