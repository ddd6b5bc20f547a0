package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clearbrook-labs/claimlens/internal/adapters/driven/index/flat"
	"github.com/clearbrook-labs/claimlens/internal/chunker"
	"github.com/clearbrook-labs/claimlens/internal/core/domain"
	"github.com/clearbrook-labs/claimlens/internal/core/ports/driven"
	"github.com/clearbrook-labs/claimlens/internal/core/ports/driving"
	"github.com/clearbrook-labs/claimlens/internal/loaders"
	"github.com/clearbrook-labs/claimlens/internal/logger"
)

// Ensure BuildService implements the interface.
var _ driving.BuildService = (*BuildService)(nil)

// BuildService constructs knowledge bases: it loads documents, chunks
// them, embeds every chunk and persists the resulting index bundle
// atomically. Per-document ingestion failures are collected; embedding
// failures abort the whole build before anything is persisted.
type BuildService struct {
	registry *loaders.Registry
	chunker  *chunker.Chunker
	embedder driven.EmbeddingService
	store    driven.BundleStore
}

// NewBuildService creates a build service.
func NewBuildService(
	registry *loaders.Registry,
	ch *chunker.Chunker,
	embedder driven.EmbeddingService,
	store driven.BundleStore,
) *BuildService {
	return &BuildService{
		registry: registry,
		chunker:  ch,
		embedder: embedder,
		store:    store,
	}
}

// Build ingests every input in order and persists the bundle. A single
// unreadable document is recorded in the report and skipped, unless it
// is the only input, in which case the build fails outright. A build
// that ingests nothing fails rather than replacing the previous bundle
// with an empty one.
func (s *BuildService) Build(ctx context.Context, inputs []driving.BuildInput) (*driving.BuildReport, error) {
	logger.Section("Knowledge Base Build")
	logger.Info("Building from %d document(s)", len(inputs))

	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: no documents to build from", domain.ErrIngestion)
	}

	index, report, err := s.buildIndex(ctx, inputs)
	if err != nil {
		return nil, err
	}
	if report.Documents == 0 {
		return nil, fmt.Errorf("%w: no documents could be ingested (%d failed)",
			domain.ErrIngestion, len(report.Failed))
	}

	snap := index.Snapshot()
	snap.Manifest.BuiltAt = time.Now().UTC()
	if err := s.store.Save(ctx, snap); err != nil {
		return nil, fmt.Errorf("persisting bundle: %w", err)
	}
	report.Manifest = snap.Manifest

	logger.Info("Build complete: %d documents, %d chunks, %d failed",
		report.Documents, report.Chunks, len(report.Failed))
	return report, nil
}

// BuildEphemeral builds an in-memory index for a single document
// without persisting anything. Used by the upload path.
func (s *BuildService) BuildEphemeral(ctx context.Context, input driving.BuildInput) (driven.VectorIndex, error) {
	index, _, err := s.buildIndex(ctx, []driving.BuildInput{input})
	if err != nil {
		return nil, err
	}
	return index, nil
}

// buildIndex runs Loader -> Chunker -> Embedder -> Index over the
// inputs in order.
func (s *BuildService) buildIndex(ctx context.Context, inputs []driving.BuildInput) (*flat.Index, *driving.BuildReport, error) {
	index := flat.New(s.embedder.ModelName(), s.embedder.Dimensions())
	report := &driving.BuildReport{}

	for _, input := range inputs {
		chunks, err := s.ingestDocument(ctx, input)
		if err != nil {
			if errors.Is(err, domain.ErrIngestion) && len(inputs) > 1 {
				logger.Warn("Skipping %s: %v", input.Origin, err)
				report.Failed = append(report.Failed, driving.DocumentError{Origin: input.Origin, Err: err})
				continue
			}
			return nil, nil, err
		}
		if len(chunks) == 0 {
			continue
		}

		vectors, err := s.embedChunks(ctx, chunks)
		if err != nil {
			// Embedding failure aborts the build; no partial bundle.
			return nil, nil, err
		}

		for i := range chunks {
			entry := domain.IndexEntry{Chunk: chunks[i], Vector: vectors[i]}
			if err := index.Insert(ctx, entry); err != nil {
				return nil, nil, fmt.Errorf("indexing chunk %s: %w", chunks[i].ID, err)
			}
		}

		report.Documents++
		report.Chunks += len(chunks)
		logger.Debug("Ingested %s: %d chunks", input.Origin, len(chunks))
	}

	return index, report, nil
}

// ingestDocument loads and chunks one input.
func (s *BuildService) ingestDocument(ctx context.Context, input driving.BuildInput) ([]domain.Chunk, error) {
	loader, err := s.registry.ForFormat(input.Format)
	if err != nil {
		return nil, err
	}

	doc, err := loader.Load(ctx, &domain.RawDocument{
		Origin:  input.Origin,
		Format:  input.Format,
		Content: input.Content,
	})
	if err != nil {
		return nil, err
	}

	return s.chunker.Split(doc), nil
}

// embedChunks embeds chunk contents in one batch, preserving order.
func (s *BuildService) embedChunks(ctx context.Context, chunks []domain.Chunk) ([][]float32, error) {
	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Content
	}

	vectors, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding %d chunks: %w", len(chunks), err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("%w: expected %d vectors, got %d",
			domain.ErrEmbeddingService, len(chunks), len(vectors))
	}
	return vectors, nil
}
