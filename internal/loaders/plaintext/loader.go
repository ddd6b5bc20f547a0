// Package plaintext loads UTF-8 text documents.
package plaintext

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/clearbrook-labs/claimlens/internal/core/domain"
	"github.com/clearbrook-labs/claimlens/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// Loader handles plain text documents.
type Loader struct{}

// New creates a new plain text loader.
func New() *Loader {
	return &Loader{}
}

// Format returns the source format this loader handles.
func (l *Loader) Format() domain.Format {
	return domain.FormatPlainText
}

// Load extracts the document text.
func (l *Loader) Load(_ context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: nil document", domain.ErrIngestion)
	}
	if !utf8.Valid(raw.Content) {
		return nil, fmt.Errorf("%w: %s is not valid UTF-8", domain.ErrIngestion, raw.Origin)
	}

	content := strings.TrimSpace(string(raw.Content))
	if content == "" {
		return nil, fmt.Errorf("%w: %s contains no text", domain.ErrIngestion, raw.Origin)
	}

	return &domain.Document{
		ID:        uuid.New().String(),
		Format:    domain.FormatPlainText,
		Origin:    raw.Origin,
		Content:   content,
		CreatedAt: time.Now(),
	}, nil
}
