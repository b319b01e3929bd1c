package services

import (
	"context"
	"errors"

	"github.com/medley-labs/medley/internal/core/domain"
)

// mockCatalog is a hand-rolled catalog provider that records every call.
type mockCatalog struct {
	userID    string
	userErr   error
	createErr error

	searchFn func(query string, limit, offset int) (domain.TrackPage, error)
	addFn    func(call int) error
	imageFn  func(call int) (string, error)

	createdPlaylists []string
	searchQueries    []string
	searchOffsets    []int
	addCalls         [][]domain.TrackURI
	imageCalls       int
}

func (m *mockCatalog) CurrentUserID(ctx context.Context, cred domain.Credential) (string, error) {
	if m.userErr != nil {
		return "", m.userErr
	}
	if m.userID == "" {
		return "user-1", nil
	}
	return m.userID, nil
}

func (m *mockCatalog) CreatePlaylist(ctx context.Context, cred domain.Credential, userID, name, description string, public bool) (string, error) {
	if m.createErr != nil {
		return "", m.createErr
	}
	m.createdPlaylists = append(m.createdPlaylists, name)
	return "pl-1", nil
}

func (m *mockCatalog) SearchTracks(ctx context.Context, cred domain.Credential, query string, limit, offset int) (domain.TrackPage, error) {
	m.searchQueries = append(m.searchQueries, query)
	m.searchOffsets = append(m.searchOffsets, offset)
	if m.searchFn == nil {
		return domain.TrackPage{URIs: []domain.TrackURI{"spotify:track:default"}}, nil
	}
	return m.searchFn(query, limit, offset)
}

func (m *mockCatalog) AddTracks(ctx context.Context, cred domain.Credential, playlistID string, uris []domain.TrackURI) error {
	call := len(m.addCalls)
	m.addCalls = append(m.addCalls, append([]domain.TrackURI(nil), uris...))
	if m.addFn != nil {
		return m.addFn(call)
	}
	return nil
}

func (m *mockCatalog) PlaylistImage(ctx context.Context, cred domain.Credential, playlistID string) (string, error) {
	call := m.imageCalls
	m.imageCalls++
	if m.imageFn != nil {
		return m.imageFn(call)
	}
	return "https://img.example/cover.jpg", nil
}

// mockSessionStore keeps sessions in a plain map without locking.
type mockSessionStore struct {
	sessions map[string]domain.Session
	saved    []domain.Credential
	saveErr  error
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: make(map[string]domain.Session)}
}

func (m *mockSessionStore) Create(ctx context.Context) (domain.Session, error) {
	sess := domain.Session{ID: "sess-1"}
	m.sessions[sess.ID] = sess
	return sess, nil
}

func (m *mockSessionStore) Get(ctx context.Context, id string) (domain.Session, error) {
	sess, ok := m.sessions[id]
	if !ok {
		return domain.Session{}, domain.ErrNotFound
	}
	return sess, nil
}

func (m *mockSessionStore) SaveCredential(ctx context.Context, id string, cred domain.Credential) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	sess, ok := m.sessions[id]
	if !ok {
		return domain.ErrNotFound
	}
	sess.Credential = &cred
	m.sessions[id] = sess
	m.saved = append(m.saved, cred)
	return nil
}

// mockTokenProvider fakes the authorization provider endpoints.
type mockTokenProvider struct {
	refreshed  domain.Credential
	refreshErr error
	refreshes  int
}

func (m *mockTokenProvider) AuthURL(state string) string {
	return "https://accounts.example/authorize?state=" + state
}

func (m *mockTokenProvider) Exchange(ctx context.Context, code string) (domain.Credential, error) {
	if code == "" {
		return domain.Credential{}, errors.New("missing code")
	}
	return m.refreshed, nil
}

func (m *mockTokenProvider) Refresh(ctx context.Context, cred domain.Credential) (domain.Credential, error) {
	m.refreshes++
	if m.refreshErr != nil {
		return domain.Credential{}, m.refreshErr
	}
	return m.refreshed, nil
}

// mockIntent fakes both the classifier and the song list generator.
type mockIntent struct {
	kind        domain.IntentKind
	classifyErr error
	songs       []domain.TrackRequest
	songsErr    error
	artist      string
	artistErr   error
}

func (m *mockIntent) ClassifyIntent(ctx context.Context, message string) (domain.IntentKind, error) {
	if m.classifyErr != nil {
		return "", m.classifyErr
	}
	return m.kind, nil
}

func (m *mockIntent) GenerateSongList(ctx context.Context, message string) ([]domain.TrackRequest, error) {
	if m.songsErr != nil {
		return nil, m.songsErr
	}
	return m.songs, nil
}

func (m *mockIntent) FavoriteArtist(ctx context.Context, message string) (string, error) {
	if m.artistErr != nil {
		return "", m.artistErr
	}
	return m.artist, nil
}

// mockRecorder captures submitted build records.
type mockRecorder struct {
	records []domain.BuildRecord
}

func (m *mockRecorder) Submit(rec domain.BuildRecord) {
	m.records = append(m.records, rec)
}
