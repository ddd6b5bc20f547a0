package domain

// ScoredChunk pairs a retrieved chunk with its similarity score.
type ScoredChunk struct {
	// Chunk is the retrieved chunk payload.
	Chunk Chunk

	// Score is the cosine similarity against the query vector. When the
	// same chunk is hit by several query expansions, the maximum score
	// seen across them wins.
	Score float64
}

// RetrievalResult is the ranked outcome of multi-query retrieval.
// Chunks are deduplicated by ID across expansions and ordered by
// descending score; ties keep first-seen order for determinism.
type RetrievalResult struct {
	// Query is the original user query.
	Query string

	// Expansions are the probe strings actually embedded, original first.
	Expansions []string

	// Chunks is the ranked, deduplicated candidate set.
	Chunks []ScoredChunk
}

// IsEmpty reports whether retrieval produced no candidates.
func (r *RetrievalResult) IsEmpty() bool {
	return len(r.Chunks) == 0
}

// ChunkIDs returns the ranked chunk identifiers.
func (r *RetrievalResult) ChunkIDs() []string {
	ids := make([]string, len(r.Chunks))
	for i := range r.Chunks {
		ids[i] = r.Chunks[i].Chunk.ID
	}
	return ids
}
