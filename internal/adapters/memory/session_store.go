package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/medley-labs/medley/internal/core/domain"
	"github.com/medley-labs/medley/internal/core/ports"
)

// SessionStore is an in-process session map. Sessions do not survive a
// restart; users re-authenticate after one.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

var _ ports.SessionStore = (*SessionStore)(nil)

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]domain.Session)}
}

func (s *SessionStore) Create(ctx context.Context) (domain.Session, error) {
	session := domain.Session{ID: uuid.NewString()}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return session, nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return domain.Session{}, fmt.Errorf("session %q: %w", id, domain.ErrNotFound)
	}
	return session, nil
}

// SaveCredential replaces the session's credential wholesale.
func (s *SessionStore) SaveCredential(ctx context.Context, id string, cred domain.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return fmt.Errorf("session %q: %w", id, domain.ErrNotFound)
	}
	session.Credential = &cred
	s.sessions[id] = session
	return nil
}
