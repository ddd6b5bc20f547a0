package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/clearbrook-labs/claimlens/internal/core/ports/driven"
	"github.com/clearbrook-labs/claimlens/internal/logger"
)

// DefaultExpansions is the number of paraphrases requested on top of
// the original query.
const DefaultExpansions = 3

// Expander turns one claim query into several retrieval probes by
// asking the LLM for paraphrases. The original query is always the
// first probe; expansion failure degrades to single-query retrieval
// rather than failing the request.
type Expander struct {
	llm     driven.LLMService
	prompts driven.PromptStore
	count   int
}

// NewExpander creates a query expander. A non-positive count uses
// DefaultExpansions.
func NewExpander(llm driven.LLMService, prompts driven.PromptStore, count int) *Expander {
	if count <= 0 {
		count = DefaultExpansions
	}
	return &Expander{llm: llm, prompts: prompts, count: count}
}

// Expand returns the probe list for a query, original first. Duplicate
// or empty paraphrases are dropped; at most count paraphrases are kept.
func (e *Expander) Expand(ctx context.Context, query string) []string {
	probes := []string{query}
	if e.llm == nil {
		return probes
	}

	template, err := e.prompts.Load(driven.PromptQueryExpansion)
	if err != nil {
		logger.Warn("Query expansion prompt unavailable: %v (using original query only)", err)
		return probes
	}

	prompt := fmt.Sprintf(template, e.count, query)
	output, err := e.llm.Generate(ctx, prompt, driven.GenerateOptions{Temperature: 0.7})
	if err != nil {
		logger.Warn("Query expansion failed: %v (using original query only)", err)
		return probes
	}

	seen := map[string]bool{strings.ToLower(strings.TrimSpace(query)): true}
	for _, line := range strings.Split(output, "\n") {
		line = cleanParaphrase(line)
		if line == "" || seen[strings.ToLower(line)] {
			continue
		}
		seen[strings.ToLower(line)] = true
		probes = append(probes, line)
		if len(probes) > e.count {
			break
		}
	}

	logger.Debug("Query expansion: %d probes for %q", len(probes), query)
	return probes
}

// cleanParaphrase strips list markers the model sometimes adds despite
// instructions ("1. ", "- ", "* ").
func cleanParaphrase(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "-*")
	if i := strings.IndexByte(line, ' '); i > 0 && i <= 3 {
		prefix := strings.TrimSuffix(line[:i], ".")
		prefix = strings.TrimSuffix(prefix, ")")
		if isDigits(prefix) {
			line = line[i+1:]
		}
	}
	return strings.TrimSpace(line)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
