package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/medley-labs/medley/internal/core/domain"
	"github.com/medley-labs/medley/internal/core/ports"
)

const (
	// insertChunkSize is the provider's per-request insertion cap.
	insertChunkSize = 100

	playlistName        = "Medley Mix"
	playlistDescription = "Playlist generated by Medley from your chat request."

	defaultSettleDelay = 2 * time.Second
	artworkAttempts    = 3
)

// Assembler materializes a playlist from an ordered list of track requests:
// create a private container, resolve every request, batch-insert the
// resolved identifiers and fetch the generated artwork.
type Assembler struct {
	catalog  ports.CatalogProvider
	resolver *Resolver
	base     string
	settle   time.Duration
	sleep    func(ctx context.Context, d time.Duration) error
}

// AssemblerOption configures an Assembler.
type AssemblerOption func(*Assembler)

// WithSettleDelay overrides the base delay before each artwork fetch attempt.
func WithSettleDelay(d time.Duration) AssemblerOption {
	return func(a *Assembler) { a.settle = d }
}

// NewAssembler constructs an Assembler. baseURL is the shareable playlist URL
// prefix the container id is appended to.
func NewAssembler(catalog ports.CatalogProvider, resolver *Resolver, baseURL string, opts ...AssemblerOption) *Assembler {
	a := &Assembler{
		catalog:  catalog,
		resolver: resolver,
		base:     strings.TrimRight(baseURL, "/") + "/",
		settle:   defaultSettleDelay,
		sleep:    sleepWithContext,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// BuildPlaylist runs the full pipeline for a fixed track list. Resolution
// failures for individual tracks are skipped, not fatal; the whole operation
// fails only if zero tracks resolve. A failed chunk insertion aborts
// immediately and earlier chunks are not rolled back, so the playlist may be
// left partially populated.
func (a *Assembler) BuildPlaylist(ctx context.Context, cred domain.Credential, requests []domain.TrackRequest) (domain.BuildOutcome, error) {
	containerID, err := a.createContainer(ctx, cred)
	if err != nil {
		return domain.BuildOutcome{}, err
	}

	uris := make([]domain.TrackURI, 0, len(requests))
	var skipped []domain.TrackRequest
	for _, req := range requests {
		uri, err := a.resolver.Resolve(ctx, cred, req)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				log.Warn().Str("title", req.Title).Str("artist", req.Artist).Msg("track did not resolve, skipping")
				skipped = append(skipped, req)
				continue
			}
			return domain.BuildOutcome{}, err
		}
		uris = append(uris, uri)
	}
	if len(uris) == 0 {
		return domain.BuildOutcome{}, fmt.Errorf("assembler: %w", domain.ErrNothingResolved)
	}

	outcome, err := a.materialize(ctx, cred, containerID, uris)
	if err != nil {
		return domain.BuildOutcome{}, err
	}
	outcome.Skipped = skipped
	return outcome, nil
}

// createContainer creates the empty private playlist the tracks are inserted
// into. A failure here is fatal for the build; there is no retry.
func (a *Assembler) createContainer(ctx context.Context, cred domain.Credential) (string, error) {
	userID, err := a.catalog.CurrentUserID(ctx, cred)
	if err != nil {
		return "", fmt.Errorf("assembler: current user: %w", err)
	}
	id, err := a.catalog.CreatePlaylist(ctx, cred, userID, playlistName, playlistDescription, false)
	if err != nil {
		return "", fmt.Errorf("assembler: create playlist: %w", err)
	}
	return id, nil
}

// materialize inserts the resolved identifiers in order and composes the
// final result once the artwork is available.
func (a *Assembler) materialize(ctx context.Context, cred domain.Credential, containerID string, uris []domain.TrackURI) (domain.BuildOutcome, error) {
	for _, chunk := range chunkURIs(uris, insertChunkSize) {
		if err := a.catalog.AddTracks(ctx, cred, containerID, chunk); err != nil {
			// Earlier chunks stay inserted; the container is left
			// partially populated.
			return domain.BuildOutcome{}, fmt.Errorf("assembler: add tracks: %w", err)
		}
	}

	image, err := a.fetchArtwork(ctx, cred, containerID)
	if err != nil {
		return domain.BuildOutcome{}, err
	}

	return domain.BuildOutcome{
		Result:   domain.PlaylistResult{URL: a.base + containerID, ImageURL: image},
		Inserted: len(uris),
	}, nil
}

// fetchArtwork polls for the generated cover art. Artwork generation is
// asynchronous on the provider side, so every attempt is preceded by an
// increasing settle delay. After the final attempt the failure is surfaced,
// not swallowed.
func (a *Assembler) fetchArtwork(ctx context.Context, cred domain.Credential, containerID string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= artworkAttempts; attempt++ {
		if err := a.sleep(ctx, a.settle*time.Duration(attempt)); err != nil {
			return "", fmt.Errorf("assembler: %w", err)
		}
		url, err := a.catalog.PlaylistImage(ctx, cred, containerID)
		if err == nil && url != "" {
			return url, nil
		}
		if err != nil {
			lastErr = err
		}
		log.Debug().Int("attempt", attempt).Str("playlist", containerID).Msg("artwork not ready")
	}
	if lastErr != nil {
		return "", fmt.Errorf("assembler: fetch artwork: %w", lastErr)
	}
	return "", errors.New("assembler: artwork not available")
}

// chunkURIs partitions uris into slices no larger than size, preserving order.
func chunkURIs(uris []domain.TrackURI, size int) [][]domain.TrackURI {
	var chunks [][]domain.TrackURI
	for start := 0; start < len(uris); start += size {
		end := start + size
		if end > len(uris) {
			end = len(uris)
		}
		chunks = append(chunks, uris[start:end])
	}
	return chunks
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
