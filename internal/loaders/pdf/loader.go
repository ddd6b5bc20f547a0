// Package pdf loads PDF documents using the ledongthuc/pdf reader.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"

	"github.com/clearbrook-labs/claimlens/internal/core/domain"
	"github.com/clearbrook-labs/claimlens/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// Loader handles PDF documents.
type Loader struct{}

// New creates a new PDF loader.
func New() *Loader {
	return &Loader{}
}

// Format returns the source format this loader handles.
func (l *Loader) Format() domain.Format {
	return domain.FormatPDF
}

// Load extracts the plain text content of a PDF payload.
func (l *Loader) Load(_ context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: nil document", domain.ErrIngestion)
	}

	reader, err := pdf.NewReader(bytes.NewReader(raw.Content), int64(len(raw.Content)))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrIngestion, raw.Origin, err)
	}

	textReader, err := reader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: extracting text: %v", domain.ErrIngestion, raw.Origin, err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, textReader); err != nil {
		return nil, fmt.Errorf("%w: %s: reading text: %v", domain.ErrIngestion, raw.Origin, err)
	}

	content := strings.TrimSpace(buf.String())
	if content == "" {
		return nil, fmt.Errorf("%w: %s contains no extractable text", domain.ErrIngestion, raw.Origin)
	}

	return &domain.Document{
		ID:        uuid.New().String(),
		Format:    domain.FormatPDF,
		Origin:    raw.Origin,
		Content:   content,
		CreatedAt: time.Now(),
	}, nil
}
