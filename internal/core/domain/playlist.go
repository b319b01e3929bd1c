package domain

import "time"

// PlaylistResult is the final shareable output handed back to the caller.
type PlaylistResult struct {
	URL      string `json:"url"`
	ImageURL string `json:"image"`
}

// BuildOutcome pairs the shareable result with bookkeeping about the build:
// how many tracks were inserted and which requests could not be resolved.
type BuildOutcome struct {
	Result   PlaylistResult
	Inserted int
	Skipped  []TrackRequest
}

// BuildRecord is one row of the build history.
type BuildRecord struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	ImageURL   string    `json:"image"`
	TrackCount int       `json:"track_count"`
	Skipped    int       `json:"skipped"`
	CreatedAt  time.Time `json:"created_at"`
}
