// Package spotify is the HTTP adapter for the catalog/playlist provider.
package spotify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/medley-labs/medley/internal/core/domain"
	"github.com/medley-labs/medley/internal/core/ports"
)

// Client talks to the Spotify Web API on behalf of an authorized user. The
// credential is threaded through every call; the client itself holds no
// token state.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	maxRetries  int
	baseBackoff time.Duration
}

// compile-time interface assertion
var _ ports.CatalogProvider = (*Client)(nil)

// NewClient constructs a Spotify client.
func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(baseURL, "/"),
		maxRetries:  defaultMaxRetries,
		baseBackoff: defaultBackoff,
	}
}

func (c *Client) newRequest(ctx context.Context, cred domain.Credential, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+cred.AccessToken)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// do performs a single-attempt request. Playlist mutation calls never
// retry; a failure is surfaced verbatim to the caller.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}

// providerError drains the response body into a ProviderError so the caller
// sees the provider's words verbatim.
func providerError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &domain.ProviderError{Op: op, Status: resp.StatusCode, Body: string(body)}
}
