package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medley-labs/medley/internal/core/domain"
)

func TestGuard_EnsureValidCredential(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	t.Run("missing session yields ErrAuthRequired", func(t *testing.T) {
		guard := NewGuard(newMockSessionStore(), &mockTokenProvider{})
		guard.now = func() time.Time { return now }

		_, err := guard.EnsureValidCredential(context.Background(), "nope")
		assert.ErrorIs(t, err, domain.ErrAuthRequired)
	})

	t.Run("session without credential yields ErrAuthRequired", func(t *testing.T) {
		store := newMockSessionStore()
		sess, _ := store.Create(context.Background())
		guard := NewGuard(store, &mockTokenProvider{})
		guard.now = func() time.Time { return now }

		_, err := guard.EnsureValidCredential(context.Background(), sess.ID)
		assert.ErrorIs(t, err, domain.ErrAuthRequired)
	})

	t.Run("valid credential is returned without a refresh", func(t *testing.T) {
		store := newMockSessionStore()
		sess, _ := store.Create(context.Background())
		cred := domain.Credential{AccessToken: "tok", RefreshToken: "ref", ExpiresAt: now.Add(time.Hour)}
		require.NoError(t, store.SaveCredential(context.Background(), sess.ID, cred))
		store.saved = nil

		tokens := &mockTokenProvider{}
		guard := NewGuard(store, tokens)
		guard.now = func() time.Time { return now }

		got, err := guard.EnsureValidCredential(context.Background(), sess.ID)
		require.NoError(t, err)
		assert.Equal(t, cred, got)
		assert.Zero(t, tokens.refreshes)
		assert.Empty(t, store.saved)
	})

	t.Run("expired credential is refreshed with refresh token unchanged", func(t *testing.T) {
		store := newMockSessionStore()
		sess, _ := store.Create(context.Background())
		expired := domain.Credential{AccessToken: "old", RefreshToken: "ref", ExpiresAt: now.Add(-time.Minute)}
		require.NoError(t, store.SaveCredential(context.Background(), sess.ID, expired))

		// Provider omits the refresh token in the refresh response.
		tokens := &mockTokenProvider{refreshed: domain.Credential{AccessToken: "new", ExpiresAt: now.Add(time.Hour)}}
		guard := NewGuard(store, tokens)
		guard.now = func() time.Time { return now }

		got, err := guard.EnsureValidCredential(context.Background(), sess.ID)
		require.NoError(t, err)
		assert.Equal(t, "new", got.AccessToken)
		assert.Equal(t, "ref", got.RefreshToken)
		assert.True(t, got.ExpiresAt.After(now))
		assert.Equal(t, 1, tokens.refreshes)

		// The store now holds the replacement credential.
		stored, err := store.Get(context.Background(), sess.ID)
		require.NoError(t, err)
		assert.Equal(t, got, *stored.Credential)
	})

	t.Run("refresh failure propagates the provider error", func(t *testing.T) {
		store := newMockSessionStore()
		sess, _ := store.Create(context.Background())
		expired := domain.Credential{AccessToken: "old", RefreshToken: "ref", ExpiresAt: now.Add(-time.Minute)}
		require.NoError(t, store.SaveCredential(context.Background(), sess.ID, expired))

		refreshErr := errors.New("invalid_grant")
		guard := NewGuard(store, &mockTokenProvider{refreshErr: refreshErr})
		guard.now = func() time.Time { return now }

		_, err := guard.EnsureValidCredential(context.Background(), sess.ID)
		assert.ErrorIs(t, err, refreshErr)
	})
}
