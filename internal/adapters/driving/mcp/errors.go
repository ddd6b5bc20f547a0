// Package mcp provides an MCP (Model Context Protocol) server adapter for
// claimlens. It lets AI assistants adjudicate insurance claim queries against
// the local knowledge base over a well-defined request/response protocol.
package mcp

import "errors"

// ErrMissingClaimService is returned when the claim service is not provided.
var ErrMissingClaimService = errors.New("mcp: claim service is required")
