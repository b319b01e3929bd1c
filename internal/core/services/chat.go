package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/medley-labs/medley/internal/core/domain"
	"github.com/medley-labs/medley/internal/core/ports"
)

const helpText = `Example prompts: ` +
	`"Make me a playlist that is a mix of Michael Jackson and The Weeknd", ` +
	`"Make me a playlist for a rainy day", ` +
	`"Make me a playlist of my favorite artist Billie Eilish"`

// BuildRecorder accepts completed builds for history keeping. Recording is
// best-effort and off the request path.
type BuildRecorder interface {
	Submit(rec domain.BuildRecord)
}

// Reply is what the chat endpoint hands back to the front end.
type Reply struct {
	Kind     string                 `json:"kind"`
	Playlist *domain.PlaylistResult `json:"playlist,omitempty"`
	Skipped  []domain.TrackRequest  `json:"skipped,omitempty"`
	Help     string                 `json:"help,omitempty"`
}

// Chat routes a user message through intent classification to the right
// playlist pipeline. Data flows one direction: free text, classified intent,
// track list or artist name, resolved identifiers, final URL plus artwork.
type Chat struct {
	guard      *Guard
	classifier ports.IntentClassifier
	generator  ports.SongListGenerator
	assembler  *Assembler
	harvester  *Harvester
	recorder   BuildRecorder
}

// NewChat constructs the chat service. recorder may be nil.
func NewChat(guard *Guard, classifier ports.IntentClassifier, generator ports.SongListGenerator, assembler *Assembler, harvester *Harvester, recorder BuildRecorder) *Chat {
	return &Chat{
		guard:      guard,
		classifier: classifier,
		generator:  generator,
		assembler:  assembler,
		harvester:  harvester,
		recorder:   recorder,
	}
}

// HandleMessage verifies the session, classifies the message and builds a
// playlist when the intent calls for one. Out-of-scope messages get the
// example-prompt help reply.
func (c *Chat) HandleMessage(ctx context.Context, sessionID, message string) (Reply, error) {
	cred, err := c.guard.EnsureValidCredential(ctx, sessionID)
	if err != nil {
		return Reply{}, err
	}

	kind, err := c.classifier.ClassifyIntent(ctx, message)
	if err != nil {
		return Reply{}, fmt.Errorf("chat: classify: %w", err)
	}

	switch kind {
	case domain.IntentRecs:
		requests, err := c.generator.GenerateSongList(ctx, message)
		if err != nil {
			return Reply{}, fmt.Errorf("chat: song list: %w", err)
		}
		outcome, err := c.assembler.BuildPlaylist(ctx, cred, requests)
		if err != nil {
			return Reply{}, err
		}
		c.record(string(domain.IntentRecs), outcome)
		return Reply{Kind: "playlist", Playlist: &outcome.Result, Skipped: outcome.Skipped}, nil

	case domain.IntentFavorite:
		artist, err := c.generator.FavoriteArtist(ctx, message)
		if err != nil {
			return Reply{}, fmt.Errorf("chat: favorite artist: %w", err)
		}
		outcome, err := c.harvester.BuildArtistPlaylist(ctx, cred, artist)
		if err != nil {
			return Reply{}, err
		}
		c.record(string(domain.IntentFavorite), outcome)
		return Reply{Kind: "playlist", Playlist: &outcome.Result}, nil

	default:
		return Reply{Kind: "help", Help: helpText}, nil
	}
}

func (c *Chat) record(source string, outcome domain.BuildOutcome) {
	if c.recorder == nil {
		return
	}
	c.recorder.Submit(domain.BuildRecord{
		ID:         uuid.NewString(),
		Source:     source,
		Name:       playlistName,
		URL:        outcome.Result.URL,
		ImageURL:   outcome.Result.ImageURL,
		TrackCount: outcome.Inserted,
		Skipped:    len(outcome.Skipped),
		CreatedAt:  time.Now().UTC(),
	})
	log.Debug().Str("source", source).Int("tracks", outcome.Inserted).Msg("build recorded")
}
