package accounts

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/medley-labs/medley/internal/core/domain"
	"github.com/medley-labs/medley/internal/core/ports"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
)

// scopes covers reading the library, writing playlists and reading listening
// history.
var scopes = []string{
	"user-library-read",
	"playlist-modify-public",
	"playlist-modify-private",
	"user-top-read",
}

// Provider implements the authorization-code flow against the Spotify
// accounts service.
type Provider struct {
	config *oauth2.Config
}

var _ ports.TokenProvider = (*Provider)(nil)

type Option func(*Provider)

// WithEndpoint points the provider at a non-default accounts service.
func WithEndpoint(authURL, tokenURL string) Option {
	return func(p *Provider) {
		p.config.Endpoint = oauth2.Endpoint{AuthURL: authURL, TokenURL: tokenURL}
	}
}

func New(clientID, clientSecret, redirectURL string, opts ...Option) *Provider {
	p := &Provider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  spotifyAuthURL,
				TokenURL: spotifyTokenURL,
			},
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AuthURL builds the authorization URL for the given state. show_dialog
// forces the consent screen so switching accounts stays possible.
func (p *Provider) AuthURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.SetAuthURLParam("show_dialog", "true"))
}

// Exchange trades the authorization code for a credential.
func (p *Provider) Exchange(ctx context.Context, code string) (domain.Credential, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return domain.Credential{}, fmt.Errorf("exchange authorization code: %w", err)
	}
	return credentialFromToken(token, ""), nil
}

// Refresh obtains a fresh access token. Spotify omits the refresh token from
// refresh responses, so the incoming one is kept when the response has none.
func (p *Provider) Refresh(ctx context.Context, cred domain.Credential) (domain.Credential, error) {
	src := p.config.TokenSource(ctx, &oauth2.Token{RefreshToken: cred.RefreshToken})
	token, err := src.Token()
	if err != nil {
		return domain.Credential{}, fmt.Errorf("refresh access token: %w", err)
	}
	return credentialFromToken(token, cred.RefreshToken), nil
}

func credentialFromToken(token *oauth2.Token, fallbackRefresh string) domain.Credential {
	refresh := token.RefreshToken
	if refresh == "" {
		refresh = fallbackRefresh
	}
	return domain.Credential{
		AccessToken:  token.AccessToken,
		RefreshToken: refresh,
		ExpiresAt:    token.Expiry,
	}
}
