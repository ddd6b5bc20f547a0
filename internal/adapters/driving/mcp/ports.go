package mcp

import (
	"context"

	"github.com/clearbrook-labs/claimlens/internal/core/ports/driven"
	"github.com/clearbrook-labs/claimlens/internal/core/ports/driving"
)

// KnowledgeBaseReader exposes the live index for resource reads.
type KnowledgeBaseReader interface {
	Index(ctx context.Context) (driven.VectorIndex, error)
}

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Claim adjudicates claim queries.
	Claim driving.ClaimService

	// Build constructs knowledge bases.
	Build driving.BuildService

	// KnowledgeBase serves the knowledge-base resource. Optional.
	KnowledgeBase KnowledgeBaseReader
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Claim == nil {
		return ErrMissingClaimService
	}
	// Build and KnowledgeBase are optional
	return nil
}
