package domain

import "time"

// Credential is the short-lived access/refresh token pair authorizing calls
// to the catalog provider. It is replaced wholesale on refresh, never mutated
// in place.
type Credential struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Expired reports whether the access token is past its expiry.
func (c Credential) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// Session ties one browser session to its credential. The credential is nil
// until the authorization code exchange completes.
type Session struct {
	ID         string
	Credential *Credential
}
