package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/clearbrook-labs/claimlens/internal/core/domain"
	"github.com/clearbrook-labs/claimlens/internal/core/ports/driven"
	"github.com/clearbrook-labs/claimlens/internal/logger"
)

// Synthesizer turns a retrieval result into a structured claim answer.
// The model sees only the retrieved clauses, each annotated with its
// chunk identifier, and must answer in the fixed JSON schema. A
// malformed response gets exactly one reformatting retry before the
// raw output surfaces as a SynthesisParseError.
type Synthesizer struct {
	llm     driven.LLMService
	prompts driven.PromptStore
}

// NewSynthesizer creates a synthesizer.
func NewSynthesizer(llm driven.LLMService, prompts driven.PromptStore) *Synthesizer {
	return &Synthesizer{llm: llm, prompts: prompts}
}

// Synthesize produces a structured answer for the retrieval result.
// Empty retrieval short-circuits to an Indeterminate answer without
// calling the model; an unsupported guess is worse than no answer.
func (s *Synthesizer) Synthesize(ctx context.Context, result *domain.RetrievalResult) (*domain.StructuredAnswer, error) {
	logger.Section("Synthesis")

	if result.IsEmpty() {
		logger.Info("No chunks retrieved; returning indeterminate answer")
		return &domain.StructuredAnswer{
			Decision:      domain.DecisionIndeterminate,
			Justification: "No relevant policy clauses were found for this query.",
		}, nil
	}

	template, err := s.prompts.Load(driven.PromptSynthesis)
	if err != nil {
		return nil, fmt.Errorf("loading synthesis prompt: %w", err)
	}
	prompt := fmt.Sprintf(template, annotateClauses(result.Chunks), result.Query)

	output, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{JSONOnly: true})
	if err != nil {
		return nil, fmt.Errorf("generating answer: %w", err)
	}

	answer, parseErr := s.parse(output, result)
	if parseErr == nil {
		return answer, nil
	}
	logger.Warn("Structured answer malformed: %v (retrying once)", parseErr)

	retryTemplate, err := s.prompts.Load(driven.PromptSynthesisRetry)
	if err != nil {
		return nil, fmt.Errorf("loading synthesis retry prompt: %w", err)
	}
	retryOutput, err := s.llm.Generate(ctx, fmt.Sprintf(retryTemplate, output), driven.GenerateOptions{JSONOnly: true})
	if err != nil {
		return nil, fmt.Errorf("regenerating answer: %w", err)
	}

	answer, parseErr = s.parse(retryOutput, result)
	if parseErr != nil {
		return nil, &domain.SynthesisParseError{RawOutput: retryOutput, Err: parseErr}
	}
	return answer, nil
}

// parse decodes and validates a model response against the answer
// schema and the supplied chunk set.
func (s *Synthesizer) parse(output string, result *domain.RetrievalResult) (*domain.StructuredAnswer, error) {
	var raw struct {
		Decision      string             `json:"decision"`
		Amount        *float64           `json:"amount"`
		Justification string             `json:"justification"`
		References    []domain.Reference `json:"references"`
	}
	if err := json.Unmarshal([]byte(stripFences(output)), &raw); err != nil {
		return nil, fmt.Errorf("decoding answer JSON: %w", err)
	}

	decision, err := domain.ParseDecision(raw.Decision)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(raw.Justification) == "" {
		return nil, fmt.Errorf("justification is empty")
	}

	supplied := make(map[string]string, len(result.Chunks))
	for i := range result.Chunks {
		supplied[result.Chunks[i].Chunk.ID] = normalizeSpace(result.Chunks[i].Chunk.Content)
	}
	for _, ref := range raw.References {
		content, ok := supplied[ref.ChunkID]
		if !ok {
			return nil, fmt.Errorf("reference cites unknown chunk %q", ref.ChunkID)
		}
		if quote := normalizeSpace(ref.Quote); quote != "" && !strings.Contains(content, quote) {
			return nil, fmt.Errorf("reference quote not found in chunk %q", ref.ChunkID)
		}
	}

	return &domain.StructuredAnswer{
		Decision:      decision,
		Amount:        raw.Amount,
		Justification: raw.Justification,
		References:    raw.References,
	}, nil
}

// annotateClauses renders retrieved chunks with their identifiers so
// the model can cite them.
func annotateClauses(chunks []domain.ScoredChunk) string {
	var sb strings.Builder
	for i := range chunks {
		if i > 0 {
			sb.WriteString("\n---\n")
		}
		fmt.Fprintf(&sb, "[%s] %s", chunks[i].Chunk.ID, chunks[i].Chunk.Content)
	}
	return sb.String()
}

// normalizeSpace collapses runs of whitespace so quote containment is
// not defeated by the model reflowing line breaks.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// stripFences removes a markdown code fence the model sometimes wraps
// JSON in despite the MIME-type constraint.
func stripFences(output string) string {
	trimmed := strings.TrimSpace(output)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
