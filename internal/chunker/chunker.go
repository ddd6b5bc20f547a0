// Package chunker splits document text into overlapping, deterministic
// chunks sized for embedding and context limits.
package chunker

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/clearbrook-labs/claimlens/internal/core/domain"
)

// DefaultSize is the default chunk size in runes.
const DefaultSize = 1000

// DefaultOverlap is the default overlap with the preceding chunk in runes.
const DefaultOverlap = 200

// Config controls chunk boundaries. The same input and config always
// yield identical boundaries.
type Config struct {
	// Size is the target chunk size in runes.
	Size int

	// Overlap is the number of runes each chunk shares with its
	// predecessor. Must be smaller than Size.
	Overlap int

	// PreferBoundaries moves a chunk's end back to the nearest sentence
	// or paragraph boundary, as long as that keeps the chunk above half
	// the target size.
	PreferBoundaries bool
}

// DefaultConfig returns the default chunking configuration.
func DefaultConfig() Config {
	return Config{
		Size:             DefaultSize,
		Overlap:          DefaultOverlap,
		PreferBoundaries: true,
	}
}

// Chunker splits documents according to a validated Config.
type Chunker struct {
	cfg Config
}

// New validates the configuration and returns a Chunker. A non-positive
// size, negative overlap, or overlap >= size fails with domain.ErrConfig;
// invalid values are never silently clamped.
func New(cfg Config) (*Chunker, error) {
	if cfg.Size <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", domain.ErrConfig, cfg.Size)
	}
	if cfg.Overlap < 0 {
		return nil, fmt.Errorf("%w: overlap must not be negative, got %d", domain.ErrConfig, cfg.Overlap)
	}
	if cfg.Overlap >= cfg.Size {
		return nil, fmt.Errorf("%w: overlap %d must be smaller than chunk size %d",
			domain.ErrConfig, cfg.Overlap, cfg.Size)
	}
	return &Chunker{cfg: cfg}, nil
}

// Split chunks the document's content. Every rune of input is covered by
// at least one chunk; chunks are contiguous, ordered, and carry rune
// offsets into the source text for citation. Empty content yields no
// chunks.
func (c *Chunker) Split(doc *domain.Document) []domain.Chunk {
	runes := []rune(doc.Content)
	total := len(runes)
	if total == 0 {
		return nil
	}

	estimated := total/(c.cfg.Size-c.cfg.Overlap) + 1
	chunks := make([]domain.Chunk, 0, estimated)

	start := 0
	prevEnd := 0
	for position := 0; ; position++ {
		end := start + c.cfg.Size
		if end > total {
			end = total
		}

		if c.cfg.PreferBoundaries && end < total {
			if cut := lastBoundary(runes[start:end]); cut > c.cfg.Size/2 {
				end = start + cut
			}
		}

		overlap := 0
		if position > 0 && prevEnd > start {
			overlap = prevEnd - start
		}

		chunks = append(chunks, domain.Chunk{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			Position:   position,
			Content:    string(runes[start:end]),
			Start:      start,
			End:        end,
			Overlap:    overlap,
		})

		if end == total {
			break
		}

		prevEnd = end
		next := end - c.cfg.Overlap
		if next <= start {
			// Boundary adjustment shrank the chunk below the overlap.
			// Step forward anyway so coverage and termination hold.
			next = start + 1
		}
		start = next
	}

	return chunks
}

// lastBoundary returns the cut position just after the last sentence or
// paragraph boundary in window, or 0 when there is none.
func lastBoundary(window []rune) int {
	for i := len(window) - 1; i > 0; i-- {
		r := window[i]
		if r == '\n' {
			return i + 1
		}
		if (r == '.' || r == '!' || r == '?') &&
			(i == len(window)-1 || isSpace(window[i+1])) {
			return i + 1
		}
	}
	return 0
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
