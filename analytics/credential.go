package analytics

import (
	"github.com/jrsteele09/go-analytics-gateway/session"
	"golang.org/x/oauth2"
)

// Credential authorizes outbound provider calls for a single request. It is
// derived fresh from the decoded session on every request and never cached or
// shared, so concurrent requests can never observe each other's tokens.
type Credential struct {
	token oauth2.Token
}

// DeriveCredential converts a decoded token grant into an immutable
// per-request credential.
func DeriveCredential(grant session.TokenGrant) Credential {
	return Credential{token: oauth2.Token{
		AccessToken: grant.AccessToken,
		TokenType:   grant.TokenType,
		Expiry:      grant.Expiry,
	}}
}

func (c Credential) tokenSource() oauth2.TokenSource {
	tok := c.token
	return oauth2.StaticTokenSource(&tok)
}
