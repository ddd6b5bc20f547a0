package loaders

import (
	"errors"
	"testing"

	"github.com/clearbrook-labs/claimlens/internal/core/domain"
)

func TestNewRegistry_CoversAllFormats(t *testing.T) {
	r := NewRegistry()

	for _, format := range []domain.Format{
		domain.FormatPlainText,
		domain.FormatPDF,
		domain.FormatDOCX,
	} {
		l, err := r.ForFormat(format)
		if err != nil {
			t.Fatalf("ForFormat(%q) returned error: %v", format, err)
		}
		if l.Format() != format {
			t.Errorf("loader for %q reports format %q", format, l.Format())
		}
	}
}

func TestForFormat_Unknown(t *testing.T) {
	r := NewRegistry()
	_, err := r.ForFormat("epub")
	if !errors.Is(err, domain.ErrIngestion) {
		t.Errorf("expected ErrIngestion, got %v", err)
	}
}
