package ports

import (
	"context"

	"github.com/medley-labs/medley/internal/core/domain"
)

// CatalogProvider is the slice of the music provider's REST surface the
// playlist pipeline consumes. Every call authorizes with the credential it
// is handed; no call exists without one.
type CatalogProvider interface {
	CurrentUserID(ctx context.Context, cred domain.Credential) (string, error)
	CreatePlaylist(ctx context.Context, cred domain.Credential, userID, name, description string, public bool) (string, error)
	SearchTracks(ctx context.Context, cred domain.Credential, query string, limit, offset int) (domain.TrackPage, error)
	AddTracks(ctx context.Context, cred domain.Credential, playlistID string, uris []domain.TrackURI) error
	PlaylistImage(ctx context.Context, cred domain.Credential, playlistID string) (string, error)
}
