package domain

import (
	"strings"
	"time"
)

// Format identifies the source format of an ingested document.
type Format string

// Supported document formats.
const (
	FormatPlainText Format = "txt"
	FormatPDF       Format = "pdf"
	FormatDOCX      Format = "docx"
)

// FormatFromPath guesses a Format from a file path extension, ignoring
// case. Unknown extensions fall back to plain text.
func FormatFromPath(path string) Format {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			switch strings.ToLower(path[i+1:]) {
			case "pdf":
				return FormatPDF
			case "docx":
				return FormatDOCX
			}
			break
		}
	}
	return FormatPlainText
}

// RawDocument is an un-extracted document as handed to a Loader.
type RawDocument struct {
	// Origin is the original location (file path, upload filename, etc).
	Origin string

	// Format is the declared source format.
	Format Format

	// Content is the raw byte payload.
	Content []byte
}

// Document is the canonical representation after text extraction.
// It is immutable once extracted; the raw text is not retained after
// its chunks are persisted.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Format is the source format the text was extracted from.
	Format Format

	// Origin is the original location (file path, upload filename, etc).
	Origin string

	// Content is the full extracted text before chunking.
	Content string

	// CreatedAt is when the document was ingested.
	CreatedAt time.Time
}

// Chunk is a bounded span of a document's text, sized for embedding and
// context limits. Chunks from one document are contiguous and ordered;
// boundaries are deterministic for a fixed chunker configuration.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the owning Document.
	DocumentID string

	// Position is the ordinal position within the document.
	Position int

	// Content is the text span of this chunk.
	Content string

	// Start and End are rune offsets of the span within the source
	// document text, kept for citation.
	Start int
	End   int

	// Overlap is the number of runes shared with the preceding chunk.
	Overlap int
}
