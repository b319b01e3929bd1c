package domain

import (
	"errors"
	"fmt"
)

// ErrAuthRequired signals that no valid credential exists for the session.
// It is unrecoverable without sending the user through the authorization
// entry point.
var ErrAuthRequired = errors.New("authorization required")

// ErrNothingResolved is returned when not a single requested track resolved.
var ErrNothingResolved = errors.New("no tracks resolved")

// ErrNotFound is the sentinel for zero-result catalog lookups.
var ErrNotFound = errors.New("not found")

// ProviderError carries a non-2xx response from the catalog provider
// verbatim. It is never retried at the service layer and is surfaced to the
// caller for visibility.
type ProviderError struct {
	Op     string
	Status int
	Body   string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: provider status %d: %s", e.Op, e.Status, e.Body)
}

// TrackNotFoundError reports a track search that returned zero items.
type TrackNotFoundError struct {
	Title  string
	Artist string
}

func (e *TrackNotFoundError) Error() string {
	return fmt.Sprintf("no track found for title %q artist %q", e.Title, e.Artist)
}

func (e *TrackNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ArtistNotFoundError reports an artist harvest whose first page was empty.
// Body preserves the raw provider response so "artist unknown" stays
// distinguishable from "artist has zero tracks".
type ArtistNotFoundError struct {
	Artist string
	Body   string
}

func (e *ArtistNotFoundError) Error() string {
	return fmt.Sprintf("no catalog match for artist %q", e.Artist)
}

func (e *ArtistNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// RefusalError reports that the completion service declined a request.
type RefusalError struct {
	Reason string
}

func (e *RefusalError) Error() string {
	return fmt.Sprintf("completion refused: %s", e.Reason)
}
