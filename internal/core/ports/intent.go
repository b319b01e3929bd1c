package ports

import (
	"context"

	"github.com/medley-labs/medley/internal/core/domain"
)

// IntentClassifier maps free text onto the closed set of intent labels.
// It is consumed as an opaque collaborator, not designed here.
type IntentClassifier interface {
	ClassifyIntent(ctx context.Context, message string) (domain.IntentKind, error)
}

// SongListGenerator turns a playlist request into concrete track requests,
// and extracts a favorite artist's name from a message that mentions one.
type SongListGenerator interface {
	GenerateSongList(ctx context.Context, message string) ([]domain.TrackRequest, error)
	FavoriteArtist(ctx context.Context, message string) (string, error)
}
