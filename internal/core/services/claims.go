package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/clearbrook-labs/claimlens/internal/core/domain"
	"github.com/clearbrook-labs/claimlens/internal/core/ports/driving"
	"github.com/clearbrook-labs/claimlens/internal/logger"
)

// Ensure ClaimService implements the interface.
var _ driving.ClaimService = (*ClaimService)(nil)

// ClaimService adjudicates claim queries: retrieval over a knowledge
// base followed by structured answer synthesis. Query processing is
// strictly read-only with respect to the persisted bundle.
type ClaimService struct {
	kb          *KnowledgeBase
	retriever   *Retriever
	synthesizer *Synthesizer
	builder     *BuildService
}

// NewClaimService creates a claim service.
func NewClaimService(
	kb *KnowledgeBase,
	retriever *Retriever,
	synthesizer *Synthesizer,
	builder *BuildService,
) *ClaimService {
	return &ClaimService{
		kb:          kb,
		retriever:   retriever,
		synthesizer: synthesizer,
		builder:     builder,
	}
}

// ProcessQuery answers a claim query against the prebuilt knowledge base.
func (s *ClaimService) ProcessQuery(ctx context.Context, query string) (*domain.StructuredAnswer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrIngestion)
	}

	index, err := s.kb.Index(ctx)
	if err != nil {
		return nil, err
	}

	logger.Section("Claim Query")
	logger.Debug("Query: %q", query)

	result, err := s.retriever.Retrieve(ctx, index, query)
	if err != nil {
		return nil, fmt.Errorf("retrieving clauses: %w", err)
	}

	return s.synthesizer.Synthesize(ctx, result)
}

// ProcessUpload answers a claim query against a single uploaded
// document. The document is indexed in memory for this request only;
// nothing is persisted and the prebuilt knowledge base is untouched.
func (s *ClaimService) ProcessUpload(ctx context.Context, query string, content []byte, format domain.Format) (*domain.StructuredAnswer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrIngestion)
	}

	logger.Section("Claim Upload")
	logger.Debug("Query: %q, format: %s, %d bytes", query, format, len(content))

	index, err := s.builder.BuildEphemeral(ctx, driving.BuildInput{
		Origin:  "upload",
		Format:  format,
		Content: content,
	})
	if err != nil {
		return nil, fmt.Errorf("indexing upload: %w", err)
	}

	result, err := s.retriever.Retrieve(ctx, index, query)
	if err != nil {
		return nil, fmt.Errorf("retrieving clauses: %w", err)
	}

	return s.synthesizer.Synthesize(ctx, result)
}
