package domain

// TrackRequest describes a desired song prior to catalog resolution.
type TrackRequest struct {
	Title  string `json:"song_title"`
	Artist string `json:"artist"`
}

// Query builds the free-text catalog search query. Title-before-artist
// matters for the provider's relevance ranking.
func (r TrackRequest) Query() string {
	return r.Title + " " + r.Artist
}

// TrackURI is an opaque provider identifier for one catalog entry.
type TrackURI string

// TrackPage is one page of catalog search results. Raw preserves the
// provider's response body for error reporting.
type TrackPage struct {
	URIs []TrackURI
	Next bool
	Raw  []byte
}
