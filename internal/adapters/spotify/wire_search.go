package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/medley-labs/medley/internal/core/domain"
)

// SearchTracks issues a type-filtered catalog search and returns one page of
// track identifiers. The raw response body rides along so callers can report
// the provider's own words on empty results.
func (c *Client) SearchTracks(ctx context.Context, cred domain.Credential, query string, limit, offset int) (domain.TrackPage, error) {
	searchURL, err := url.Parse(c.baseURL + "/search")
	if err != nil {
		return domain.TrackPage{}, fmt.Errorf("spotify adapter: invalid search url: %w", err)
	}

	q := searchURL.Query()
	q.Set("q", query)
	q.Set("type", "track")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	searchURL.RawQuery = q.Encode()

	req, err := c.newRequest(ctx, cred, http.MethodGet, searchURL.String(), nil)
	if err != nil {
		return domain.TrackPage{}, err
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return domain.TrackPage{}, fmt.Errorf("spotify adapter: search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.TrackPage{}, providerError("search", resp)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.TrackPage{}, fmt.Errorf("spotify adapter: read search response: %w", err)
	}

	var body searchResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return domain.TrackPage{}, fmt.Errorf("spotify adapter: search decode error: %w", err)
	}

	page := domain.TrackPage{Raw: raw, Next: body.Tracks.Next != nil}
	for _, item := range body.Tracks.Items {
		page.URIs = append(page.URIs, domain.TrackURI(item.URI))
	}
	return page, nil
}
