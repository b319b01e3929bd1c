package accounts

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medley-labs/medley/internal/core/domain"
)

func tokenServer(t *testing.T, handler func(form url.Values) string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, handler(r.Form))
	}))
}

func TestProvider_AuthURL(t *testing.T) {
	p := New("client-id", "client-secret", "http://127.0.0.1:8080/callback")

	raw := p.AuthURL("state-123")
	u, err := url.Parse(raw)
	require.NoError(t, err)

	q := u.Query()
	assert.Equal(t, "accounts.spotify.com", u.Host)
	assert.Equal(t, "client-id", q.Get("client_id"))
	assert.Equal(t, "state-123", q.Get("state"))
	assert.Equal(t, "true", q.Get("show_dialog"))
	assert.Contains(t, q.Get("scope"), "playlist-modify-public")
}

func TestProvider_Exchange(t *testing.T) {
	srv := tokenServer(t, func(form url.Values) string {
		assert.Equal(t, "authorization_code", form.Get("grant_type"))
		assert.Equal(t, "the-code", form.Get("code"))
		return `{"access_token":"acc-1","refresh_token":"ref-1","token_type":"Bearer","expires_in":3600}`
	})
	defer srv.Close()

	p := New("client-id", "client-secret", "http://127.0.0.1:8080/callback",
		WithEndpoint(srv.URL+"/authorize", srv.URL+"/token"))

	cred, err := p.Exchange(context.Background(), "the-code")
	require.NoError(t, err)
	assert.Equal(t, "acc-1", cred.AccessToken)
	assert.Equal(t, "ref-1", cred.RefreshToken)
	assert.False(t, cred.ExpiresAt.IsZero())
}

func TestProvider_Refresh(t *testing.T) {
	t.Run("response without refresh token keeps the old one", func(t *testing.T) {
		srv := tokenServer(t, func(form url.Values) string {
			assert.Equal(t, "refresh_token", form.Get("grant_type"))
			assert.Equal(t, "ref-old", form.Get("refresh_token"))
			return `{"access_token":"acc-2","token_type":"Bearer","expires_in":3600}`
		})
		defer srv.Close()

		p := New("client-id", "client-secret", "http://127.0.0.1:8080/callback",
			WithEndpoint(srv.URL+"/authorize", srv.URL+"/token"))

		cred, err := p.Refresh(context.Background(), domain.Credential{RefreshToken: "ref-old"})
		require.NoError(t, err)
		assert.Equal(t, "acc-2", cred.AccessToken)
		assert.Equal(t, "ref-old", cred.RefreshToken)
	})

	t.Run("rotated refresh token is adopted", func(t *testing.T) {
		srv := tokenServer(t, func(url.Values) string {
			return `{"access_token":"acc-3","refresh_token":"ref-new","token_type":"Bearer","expires_in":3600}`
		})
		defer srv.Close()

		p := New("client-id", "client-secret", "http://127.0.0.1:8080/callback",
			WithEndpoint(srv.URL+"/authorize", srv.URL+"/token"))

		cred, err := p.Refresh(context.Background(), domain.Credential{RefreshToken: "ref-old"})
		require.NoError(t, err)
		assert.Equal(t, "ref-new", cred.RefreshToken)
	})

	t.Run("provider failure surfaces", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error":"invalid_grant"}`)
		}))
		defer srv.Close()

		p := New("client-id", "client-secret", "http://127.0.0.1:8080/callback",
			WithEndpoint(srv.URL+"/authorize", srv.URL+"/token"))

		_, err := p.Refresh(context.Background(), domain.Credential{RefreshToken: "ref-dead"})
		require.Error(t, err)
	})
}
