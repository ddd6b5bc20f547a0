// Package loaders selects a document loader by source format.
package loaders

import (
	"fmt"

	"github.com/clearbrook-labs/claimlens/internal/core/domain"
	"github.com/clearbrook-labs/claimlens/internal/core/ports/driven"
	"github.com/clearbrook-labs/claimlens/internal/loaders/docx"
	"github.com/clearbrook-labs/claimlens/internal/loaders/pdf"
	"github.com/clearbrook-labs/claimlens/internal/loaders/plaintext"
)

// Registry maps formats to loaders.
type Registry struct {
	byFormat map[domain.Format]driven.Loader
}

// NewRegistry creates a registry with every built-in loader registered.
func NewRegistry() *Registry {
	r := &Registry{byFormat: make(map[domain.Format]driven.Loader)}
	r.Register(plaintext.New())
	r.Register(pdf.New())
	r.Register(docx.New())
	return r
}

// Register adds a loader, replacing any prior loader for its format.
func (r *Registry) Register(l driven.Loader) {
	r.byFormat[l.Format()] = l
}

// ForFormat returns the loader for the given format.
func (r *Registry) ForFormat(format domain.Format) (driven.Loader, error) {
	l, ok := r.byFormat[format]
	if !ok {
		return nil, fmt.Errorf("%w: no loader for format %q", domain.ErrIngestion, format)
	}
	return l, nil
}
