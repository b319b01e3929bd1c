package spotify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/medley-labs/medley/internal/core/domain"
)

// CurrentUserID resolves the authorized user's Spotify ID.
func (c *Client) CurrentUserID(ctx context.Context, cred domain.Credential) (string, error) {
	req, err := c.newRequest(ctx, cred, http.MethodGet, c.baseURL+"/me", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.do(req)
	if err != nil {
		return "", fmt.Errorf("spotify adapter: me request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", providerError("me", resp)
	}

	var body userResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("spotify adapter: me decode error: %w", err)
	}
	return body.ID, nil
}

// CreatePlaylist creates an empty playlist container and returns its id.
func (c *Client) CreatePlaylist(ctx context.Context, cred domain.Credential, userID, name, description string, public bool) (string, error) {
	payload, err := json.Marshal(createPlaylistRequest{Name: name, Description: description, Public: public})
	if err != nil {
		return "", fmt.Errorf("spotify adapter: marshal playlist request: %w", err)
	}

	url := fmt.Sprintf("%s/users/%s/playlists", c.baseURL, userID)
	req, err := c.newRequest(ctx, cred, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}

	resp, err := c.do(req)
	if err != nil {
		return "", fmt.Errorf("spotify adapter: create playlist request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", providerError("create playlist", resp)
	}

	var body createPlaylistResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("spotify adapter: create playlist decode error: %w", err)
	}
	return body.ID, nil
}

// AddTracks inserts one chunk of track URIs into a playlist. The provider
// answers 201 on success; anything else surfaces as a ProviderError.
func (c *Client) AddTracks(ctx context.Context, cred domain.Credential, playlistID string, uris []domain.TrackURI) error {
	raw := make([]string, len(uris))
	for i, uri := range uris {
		raw[i] = string(uri)
	}
	payload, err := json.Marshal(addTracksRequest{URIs: raw})
	if err != nil {
		return fmt.Errorf("spotify adapter: marshal tracks request: %w", err)
	}

	url := fmt.Sprintf("%s/playlists/%s/tracks", c.baseURL, playlistID)
	req, err := c.newRequest(ctx, cred, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("spotify adapter: add tracks request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return providerError("add tracks", resp)
	}
	return nil
}

// PlaylistImage returns the first cover image URL for a playlist, or an
// empty string when the provider has not generated one yet.
func (c *Client) PlaylistImage(ctx context.Context, cred domain.Credential, playlistID string) (string, error) {
	url := fmt.Sprintf("%s/playlists/%s/images", c.baseURL, playlistID)
	req, err := c.newRequest(ctx, cred, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.do(req)
	if err != nil {
		return "", fmt.Errorf("spotify adapter: image request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", providerError("playlist image", resp)
	}

	var images []playlistImage
	if err := json.NewDecoder(resp.Body).Decode(&images); err != nil {
		return "", fmt.Errorf("spotify adapter: image decode error: %w", err)
	}
	if len(images) == 0 {
		return "", nil
	}
	return images[0].URL, nil
}
