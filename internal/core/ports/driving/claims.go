package driving

import (
	"context"

	"github.com/clearbrook-labs/claimlens/internal/core/domain"
)

// ClaimService answers claim queries against a knowledge base.
type ClaimService interface {
	// ProcessQuery adjudicates a claim query against the prebuilt
	// knowledge base. Fails with domain.ErrNoKnowledgeBase when none is
	// loaded. Query-time failures never touch the persisted bundle.
	ProcessQuery(ctx context.Context, query string) (*domain.StructuredAnswer, error)

	// ProcessUpload adjudicates a claim query against a single uploaded
	// document: an ephemeral index is built for it, queried once, then
	// discarded.
	ProcessUpload(ctx context.Context, query string, content []byte, format domain.Format) (*domain.StructuredAnswer, error)
}
