package driven

import "context"

// LLMService provides text generation for query expansion and answer
// synthesis. The provider is an opaque external capability; adapters
// handle retries and surface exhaustion as domain.ErrGenerationService.
//
// Implementations may include:
//   - OpenAI (GPT-4o family)
//   - Gemini (gemini-2.5-flash-lite)
//   - Scripted fakes for testing
type LLMService interface {
	// Generate produces a text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64

	// JSONOnly asks the provider to constrain output to valid JSON,
	// where the provider supports it. Parsing still validates the result.
	JSONOnly bool
}
