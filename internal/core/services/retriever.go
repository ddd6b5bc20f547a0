package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/clearbrook-labs/claimlens/internal/core/domain"
	"github.com/clearbrook-labs/claimlens/internal/core/ports/driven"
	"github.com/clearbrook-labs/claimlens/internal/logger"
)

// DefaultTopK is the default number of chunks retrieved per query.
const DefaultTopK = 5

// Retriever runs multi-query retrieval: every probe is embedded and
// searched independently, and the per-probe hit lists are merged into
// one ranked, deduplicated candidate set.
type Retriever struct {
	embedder driven.EmbeddingService
	expander *Expander
	topK     int
}

// NewRetriever creates a retriever. A non-positive topK uses DefaultTopK.
func NewRetriever(embedder driven.EmbeddingService, expander *Expander, topK int) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Retriever{embedder: embedder, expander: expander, topK: topK}
}

// Retrieve expands the query, embeds every probe, searches the index
// per probe and merges the results. Chunks hit by several probes keep
// their maximum score. Probe embeddings run concurrently but results
// merge in probe order, so output is deterministic for a fixed index.
func (r *Retriever) Retrieve(ctx context.Context, index driven.VectorIndex, query string) (*domain.RetrievalResult, error) {
	logger.Section("Retrieval")

	probes := r.expander.Expand(ctx, query)
	logger.Debug("Probes: %d", len(probes))

	vectors, err := r.embedProbes(ctx, probes)
	if err != nil {
		return nil, err
	}

	// Search sequentially in probe order; the index is in-memory and the
	// merge must be order-stable.
	type hitList struct {
		probe string
		hits  []domain.ScoredChunk
	}
	lists := make([]hitList, 0, len(probes))
	for i, vec := range vectors {
		if vec == nil {
			continue
		}
		hits, err := index.Search(ctx, vec, r.topK)
		if err != nil {
			return nil, fmt.Errorf("searching index for probe %d: %w", i, err)
		}
		lists = append(lists, hitList{probe: probes[i], hits: hits})
	}

	result := &domain.RetrievalResult{Query: query}
	byID := make(map[string]int)
	for _, l := range lists {
		result.Expansions = append(result.Expansions, l.probe)
		for _, hit := range l.hits {
			if pos, ok := byID[hit.Chunk.ID]; ok {
				if hit.Score > result.Chunks[pos].Score {
					result.Chunks[pos].Score = hit.Score
				}
				continue
			}
			byID[hit.Chunk.ID] = len(result.Chunks)
			result.Chunks = append(result.Chunks, hit)
		}
	}

	// Rank by score; stable sort keeps first-seen order on ties.
	sort.SliceStable(result.Chunks, func(i, j int) bool {
		return result.Chunks[i].Score > result.Chunks[j].Score
	})
	if len(result.Chunks) > r.topK {
		result.Chunks = result.Chunks[:r.topK]
	}

	logger.Info("Retrieved %d unique chunks from %d probes", len(result.Chunks), len(result.Expansions))
	return result, nil
}

// embedProbes embeds all probes concurrently, collecting results by
// position. A failed paraphrase embedding is dropped with a warning;
// failure of the original query's embedding fails retrieval outright.
func (r *Retriever) embedProbes(ctx context.Context, probes []string) ([][]float32, error) {
	vectors := make([][]float32, len(probes))
	errs := make([]error, len(probes))

	var wg sync.WaitGroup
	for i, probe := range probes {
		wg.Add(1)
		go func(i int, probe string) {
			defer wg.Done()
			vectors[i], errs[i] = r.embedder.Embed(ctx, probe)
		}(i, probe)
	}
	wg.Wait()

	if errs[0] != nil {
		return nil, fmt.Errorf("embedding query: %w", errs[0])
	}
	for i := 1; i < len(errs); i++ {
		if errs[i] != nil {
			logger.Warn("Dropping probe %q: %v", probes[i], errs[i])
			vectors[i] = nil
		}
	}
	return vectors, nil
}
