// Package services holds the playlist materialization pipeline: the session
// guard, track resolver, playlist assembler, catalog harvester and the chat
// service that routes messages between them.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/medley-labs/medley/internal/core/domain"
	"github.com/medley-labs/medley/internal/core/ports"
)

// Guard verifies a usable credential exists for a session before any catalog
// call is made, refreshing expired tokens through the token provider.
type Guard struct {
	sessions ports.SessionStore
	tokens   ports.TokenProvider
	now      func() time.Time
}

// NewGuard constructs a Guard.
func NewGuard(sessions ports.SessionStore, tokens ports.TokenProvider) *Guard {
	return &Guard{sessions: sessions, tokens: tokens, now: time.Now}
}

// EnsureValidCredential returns a credential ready for bearer authorization.
// A missing session or credential yields domain.ErrAuthRequired; an expired
// credential is replaced wholesale via a refresh exchange before being
// returned. The refresh token survives a refresh unless the provider issues
// a new one.
func (g *Guard) EnsureValidCredential(ctx context.Context, sessionID string) (domain.Credential, error) {
	if sessionID == "" {
		return domain.Credential{}, fmt.Errorf("guard: %w", domain.ErrAuthRequired)
	}

	sess, err := g.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.Credential{}, fmt.Errorf("guard: %w", domain.ErrAuthRequired)
	}
	if sess.Credential == nil {
		return domain.Credential{}, fmt.Errorf("guard: %w", domain.ErrAuthRequired)
	}

	cred := *sess.Credential
	if !cred.Expired(g.now()) {
		return cred, nil
	}

	refreshed, err := g.tokens.Refresh(ctx, cred)
	if err != nil {
		return domain.Credential{}, fmt.Errorf("guard: refresh failed: %w", err)
	}
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = cred.RefreshToken
	}

	if err := g.sessions.SaveCredential(ctx, sess.ID, refreshed); err != nil {
		return domain.Credential{}, fmt.Errorf("guard: save credential: %w", err)
	}

	log.Debug().Str("session", sess.ID).Time("expires_at", refreshed.ExpiresAt).Msg("credential refreshed")
	return refreshed, nil
}
