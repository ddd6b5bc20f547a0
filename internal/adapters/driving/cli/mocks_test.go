package cli

import (
	"context"

	"github.com/clearbrook-labs/claimlens/internal/core/domain"
	"github.com/clearbrook-labs/claimlens/internal/core/ports/driving"
)

// mockClaimService returns a canned answer for every query.
type mockClaimService struct {
	answer *domain.StructuredAnswer
	err    error

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

// mockBuildService returns a canned report for every build.
type mockBuildService struct {
	report *driving.BuildReport
	err    error

	lastInputs []driving.BuildInput
}

func (m *mockBuildService) Build(_ context.Context, inputs []driving.BuildInput) (*driving.BuildReport, error) {
	m.lastInputs = inputs
	return m.report, m.err
}

func defaultAnswer() *domain.StructuredAnswer {
	amount := 50000.0
	return &domain.StructuredAnswer{
		Decision:      domain.DecisionApproved,
		Amount:        &amount,
		Justification: "Knee surgery is covered under the surgical benefit.",
		References: []domain.Reference{
			{ChunkID: "c1", Quote: "surgical procedures are covered up to the sum insured"},
		},
	}
}

// setupTestServices installs mock services and returns a cleanup func
// that restores the previous wiring.
func setupTestServices() func() {
	oldClaim := claimService
	oldBuild := buildService

	claimService = &mockClaimService{answer: defaultAnswer()}
	buildService = &mockBuildService{
		report: &driving.BuildReport{
			Documents: 1,
			Chunks:    4,
			Manifest:  domain.Manifest{Model: "text-embedding-004", Dimensions: 768},
		},
	}

	return func() {
		claimService = oldClaim
		buildService = oldBuild
	}
}
