package plaintext

import (
	"context"
	"errors"
	"testing"

	"github.com/clearbrook-labs/claimlens/internal/core/domain"
)

func TestLoad_ValidText(t *testing.T) {
	l := New()
	raw := &domain.RawDocument{
		Origin:  "policy.txt",
		Format:  domain.FormatPlainText,
		Content: []byte("  The policy covers knee surgery after 90 days.  \n"),
	}

	doc, err := l.Load(context.Background(), raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Content != "The policy covers knee surgery after 90 days." {
		t.Errorf("unexpected content: %q", doc.Content)
	}
	if doc.Origin != "policy.txt" {
		t.Errorf("unexpected origin: %q", doc.Origin)
	}
	if doc.Format != domain.FormatPlainText {
		t.Errorf("unexpected format: %q", doc.Format)
	}
	if doc.ID == "" {
		t.Error("expected a generated document id")
	}
}

func TestLoad_EmptyContent(t *testing.T) {
	l := New()
	for _, content := range [][]byte{nil, []byte(""), []byte("   \n\t ")} {
		raw := &domain.RawDocument{Origin: "empty.txt", Content: content}
		_, err := l.Load(context.Background(), raw)
		if !errors.Is(err, domain.ErrIngestion) {
			t.Errorf("content %q: expected ErrIngestion, got %v", content, err)
		}
	}
}

func TestLoad_InvalidUTF8(t *testing.T) {
	l := New()
	raw := &domain.RawDocument{Origin: "bad.txt", Content: []byte{0xff, 0xfe, 0x00}}
	_, err := l.Load(context.Background(), raw)
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
