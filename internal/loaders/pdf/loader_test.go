package pdf

import (
	"context"
	"errors"
	"testing"

	"github.com/clearbrook-labs/claimlens/internal/core/domain"
)

func TestLoad_CorruptPayload(t *testing.T) {
	l := New()
	_, err := l.Load(context.Background(), &domain.RawDocument{
		Origin:  "garbage.pdf",
		Content: []byte("not a pdf at all"),
	})
	if !errors.Is(err, domain.ErrIngestion) {
		t.Errorf("expected ErrIngestion, got %v", err)
	}
}

func TestLoad_EmptyPayload(t *testing.T) {
	l := New()
	_, err := l.Load(context.Background(), &domain.RawDocument{
		Origin:  "empty.pdf",
		Content: nil,
	})
	if !errors.Is(err, domain.ErrIngestion) {
		t.Errorf("expected ErrIngestion, got %v", err)
	}
}

func TestLoad_NilDocument(t *testing.T) {
	l := New()
	if _, err := l.Load(context.Background(), nil); !errors.Is(err, domain.ErrIngestion) {
		t.Errorf("expected ErrIngestion, got %v", err)
	}
}

func TestFormat(t *testing.T) {
	if New().Format() != domain.FormatPDF {
		t.Error("expected pdf format")
	}
}
