package services

import (
	"context"
	"fmt"

	"github.com/medley-labs/medley/internal/core/domain"
	"github.com/medley-labs/medley/internal/core/ports"
)

const (
	harvestPageSize = 50
	// maxHarvestOffset caps pagination. The upstream search endpoint stops
	// serving correct results well before an artist's true catalog size;
	// a known external limitation, not something to engineer around.
	maxHarvestOffset = 1000
)

// Harvester builds a playlist from an artist's entire retrievable catalog
// instead of a fixed song list, then feeds the harvested set through the
// assembler's insertion and artwork steps.
type Harvester struct {
	catalog   ports.CatalogProvider
	assembler *Assembler
}

// NewHarvester constructs a Harvester.
func NewHarvester(catalog ports.CatalogProvider, assembler *Assembler) *Harvester {
	return &Harvester{catalog: catalog, assembler: assembler}
}

// BuildArtistPlaylist creates a container and fills it with every track the
// exact-match artist search can page through. An artist whose first page is
// empty yields an ArtistNotFoundError carrying the raw provider response;
// an empty playlist is never fabricated.
func (h *Harvester) BuildArtistPlaylist(ctx context.Context, cred domain.Credential, artist string) (domain.BuildOutcome, error) {
	containerID, err := h.assembler.createContainer(ctx, cred)
	if err != nil {
		return domain.BuildOutcome{}, err
	}

	uris, err := h.harvest(ctx, cred, artist)
	if err != nil {
		return domain.BuildOutcome{}, err
	}

	return h.assembler.materialize(ctx, cred, containerID, uris)
}

// harvest pages through the catalog search at a fixed page size until the
// provider's next-page indicator is absent or the offset cap is reached.
func (h *Harvester) harvest(ctx context.Context, cred domain.Credential, artist string) ([]domain.TrackURI, error) {
	query := fmt.Sprintf("artist:%q", artist)

	var uris []domain.TrackURI
	for offset := 0; offset <= maxHarvestOffset; offset += harvestPageSize {
		page, err := h.catalog.SearchTracks(ctx, cred, query, harvestPageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("harvester: %w", err)
		}
		if offset == 0 && len(page.URIs) == 0 {
			return nil, fmt.Errorf("harvester: %w", &domain.ArtistNotFoundError{Artist: artist, Body: string(page.Raw)})
		}
		uris = append(uris, page.URIs...)
		if !page.Next {
			break
		}
	}
	return uris, nil
}
