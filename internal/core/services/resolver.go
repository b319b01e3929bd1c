package services

import (
	"context"
	"fmt"

	"github.com/medley-labs/medley/internal/core/domain"
	"github.com/medley-labs/medley/internal/core/ports"
)

const resolveLimit = 1

// Resolver turns a (title, artist) pair into exactly one catalog identifier.
type Resolver struct {
	catalog ports.CatalogProvider
}

// NewResolver constructs a Resolver.
func NewResolver(catalog ports.CatalogProvider) *Resolver {
	return &Resolver{catalog: catalog}
}

// Resolve issues a type-filtered track search and selects the first result.
// No scoring, no fuzzy matching, no artist verification: callers accept that
// near-miss titles may resolve to the wrong recording. Zero results fail with
// a TrackNotFoundError.
func (r *Resolver) Resolve(ctx context.Context, cred domain.Credential, req domain.TrackRequest) (domain.TrackURI, error) {
	page, err := r.catalog.SearchTracks(ctx, cred, req.Query(), resolveLimit, 0)
	if err != nil {
		return "", fmt.Errorf("resolver: %w", err)
	}
	if len(page.URIs) == 0 {
		return "", fmt.Errorf("resolver: %w", &domain.TrackNotFoundError{Title: req.Title, Artist: req.Artist})
	}
	return page.URIs[0], nil
}
