package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for claimlens resources.
	uriScheme = "claimlens://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "knowledge-base",
		Name:        "knowledge-base",
		Description: "Manifest of the loaded policy knowledge base",
		MIMEType:    "application/json",
	}, s.handleKnowledgeBaseResource)
}

// handleKnowledgeBaseResource describes the loaded knowledge base.
func (s *Server) handleKnowledgeBaseResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.KnowledgeBase == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	index, err := s.ports.KnowledgeBase.Index(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading knowledge base: %w", err)
	}

	info := struct {
		Model      string `json:"model"`
		Dimensions int    `json:"dimensions"`
		Chunks     int    `json:"chunks"`
	}{
		Model:      index.ModelName(),
		Dimensions: index.Dimensions(),
		Chunks:     index.Len(),
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling manifest: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
