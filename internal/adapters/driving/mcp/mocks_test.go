package mcp

import (
	"context"

	"github.com/clearbrook-labs/claimlens/internal/core/domain"
	"github.com/clearbrook-labs/claimlens/internal/core/ports/driven"
	"github.com/clearbrook-labs/claimlens/internal/core/ports/driving"
)

// mockClaimService is a mock implementation of driving.ClaimService.
type mockClaimService struct {
	answer *domain.StructuredAnswer
	err    error

	// lastQuery, lastContent and lastFormat record the most recent call.
	lastQuery   string
	lastContent []byte
	lastFormat  domain.Format
}

func (m *mockClaimService) ProcessQuery(_ context.Context, query string) (*domain.StructuredAnswer, error) {
	m.lastQuery = query
	return m.answer, m.err
}

func (m *mockClaimService) ProcessUpload(
	_ context.Context,
	query string,
	content []byte,
	format domain.Format,
) (*domain.StructuredAnswer, error) {
	m.lastQuery = query
	m.lastContent = content
	m.lastFormat = format
	return m.answer, m.err
}

// mockBuildService is a mock implementation of driving.BuildService.
type mockBuildService struct {
	report *driving.BuildReport
	err    error
}

func (m *mockBuildService) Build(_ context.Context, _ []driving.BuildInput) (*driving.BuildReport, error) {
	return m.report, m.err
}

// mockKnowledgeBase is a mock implementation of KnowledgeBaseReader.
type mockKnowledgeBase struct {
	index driven.VectorIndex
	err   error
}

func (m *mockKnowledgeBase) Index(_ context.Context) (driven.VectorIndex, error) {
	return m.index, m.err
}
