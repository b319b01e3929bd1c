package ports

import (
	"context"

	"github.com/medley-labs/medley/internal/core/domain"
)

// SessionStore keeps per-session credentials, keyed by session id. It is
// injected into every component rather than accessed ambiently so that
// multiple sessions can coexist in one process.
type SessionStore interface {
	Create(ctx context.Context) (domain.Session, error)
	Get(ctx context.Context, id string) (domain.Session, error)
	SaveCredential(ctx context.Context, id string, cred domain.Credential) error
}

// TokenProvider wraps the authorization provider's code-exchange and
// refresh-token endpoints.
type TokenProvider interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (domain.Credential, error)
	Refresh(ctx context.Context, cred domain.Credential) (domain.Credential, error)
}
