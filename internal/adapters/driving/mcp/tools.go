package mcp

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/clearbrook-labs/claimlens/internal/core/domain"
)

// ProcessClaimInput is the input schema for the process_claim tool.
type ProcessClaimInput struct {
	Query string `json:"query" jsonschema:"the claim query to adjudicate against the knowledge base"`
}

// ProcessClaimUploadInput is the input schema for process_claim_upload.
type ProcessClaimUploadInput struct {
	Query    string `json:"query" jsonschema:"the claim query to adjudicate against the uploaded document"`
	Document string `json:"document" jsonschema:"base64-encoded document payload"`
	Format   string `json:"format,omitempty" jsonschema:"document format: txt, pdf or docx (default txt)"`
}

// AnswerOutput is the output schema shared by the claim tools.
type AnswerOutput struct {
	Decision      string            `json:"decision"`
	Amount        *float64          `json:"amount"`
	Justification string            `json:"justification"`
	References    []ReferenceOutput `json:"references"`
}

// ReferenceOutput is a single supporting citation.
type ReferenceOutput struct {
	ChunkID string `json:"chunk_id"`
	Quote   string `json:"quote"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "process_claim",
		Description: "Adjudicate an insurance claim query against the prebuilt policy knowledge base",
	}, s.handleProcessClaim)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "process_claim_upload",
		Description: "Adjudicate an insurance claim query against a single uploaded policy document",
	}, s.handleProcessClaimUpload)
}

// handleProcessClaim handles the process_claim tool invocation.
func (s *Server) handleProcessClaim(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ProcessClaimInput,
) (*mcp.CallToolResult, AnswerOutput, error) {
	answer, err := s.ports.Claim.ProcessQuery(ctx, input.Query)
	if err != nil {
		return nil, AnswerOutput{}, err
	}
	return nil, answerOutput(answer), nil
}

// handleProcessClaimUpload handles the process_claim_upload tool invocation.
func (s *Server) handleProcessClaimUpload(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ProcessClaimUploadInput,
) (*mcp.CallToolResult, AnswerOutput, error) {
	content, err := base64.StdEncoding.DecodeString(input.Document)
	if err != nil {
		return nil, AnswerOutput{}, fmt.Errorf("decoding document payload: %w", err)
	}

	format := domain.Format(input.Format)
	if format == "" {
		format = domain.FormatPlainText
	}

	answer, err := s.ports.Claim.ProcessUpload(ctx, input.Query, content, format)
	if err != nil {
		return nil, AnswerOutput{}, err
	}
	return nil, answerOutput(answer), nil
}

// answerOutput converts a structured answer to the tool output schema.
func answerOutput(answer *domain.StructuredAnswer) AnswerOutput {
	out := AnswerOutput{
		Decision:      string(answer.Decision),
		Amount:        answer.Amount,
		Justification: answer.Justification,
		References:    make([]ReferenceOutput, len(answer.References)),
	}
	for i, ref := range answer.References {
		out.References[i] = ReferenceOutput{ChunkID: ref.ChunkID, Quote: ref.Quote}
	}
	return out
}
