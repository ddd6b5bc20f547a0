package driven

import (
	"context"

	"github.com/clearbrook-labs/claimlens/internal/core/domain"
)

// BundleStore persists knowledge-base snapshots.
//
// Save must be atomic with respect to readers of a previously saved
// bundle: a failed save leaves the prior bundle untouched, and a
// successful save replaces it in one step.
type BundleStore interface {
	// Save persists a complete snapshot, replacing any previous bundle.
	Save(ctx context.Context, snap *domain.Snapshot) error

	// Load reads the current bundle. Returns domain.ErrNotFound when no
	// bundle has been saved yet.
	Load(ctx context.Context) (*domain.Snapshot, error)

	// Path returns the bundle's filesystem location, for change watching.
	Path() string

	// Close releases resources.
	Close() error
}
