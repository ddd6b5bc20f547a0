package driven

import "context"

// EmbeddingService generates vector embeddings from text.
// The provider is an opaque external capability with its own
// authentication, rate limits and latency; adapters handle retries with
// bounded backoff and surface exhaustion as domain.ErrEmbeddingService.
//
// Implementations may include:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Gemini (text-embedding-004)
//   - Deterministic fakes for testing
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts, preserving
	// input order. It exists purely for throughput and is semantically
	// equivalent to calling Embed once per text.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 768, 1536).
	// This must match the VectorIndex the vectors are inserted into.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
