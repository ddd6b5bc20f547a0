package driven

import (
	"context"

	"github.com/clearbrook-labs/claimlens/internal/core/domain"
)

// Loader extracts plain text from a raw document payload.
//
// Loaders are selected by document format. Unreadable, corrupt or empty
// payloads fail with an error wrapping domain.ErrIngestion.
type Loader interface {
	// Format returns the source format this loader handles.
	Format() domain.Format

	// Load extracts the document text. The returned Document is
	// immutable once created.
	Load(ctx context.Context, raw *domain.RawDocument) (*domain.Document, error)
}
