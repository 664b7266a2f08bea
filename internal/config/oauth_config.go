package config

import "fmt"

type OAuthConfig interface {
	GetGoogleClientID() string
	GetGoogleClientSecret() string
	GetGoogleIssuer() string
	GetAuthEndpoint() string
	GetTokenEndpoint() string
	GetRedirectURL() string
	GetScopes() []string
	GetDefaultPropertyID() string
	GetDashboardURL() string
}

var _ OAuthConfig = EnvVars{}

// Read-only Analytics scopes requested during consent. Offline access and
// forced re-consent are set on the authorization URL, not here.
var analyticsScopes = []string{
	"https://www.googleapis.com/auth/analytics.readonly",
	"https://www.googleapis.com/auth/analytics.manage.users.readonly",
}

func (e EnvVars) GetGoogleClientID() string {
	return e.GoogleClientID
}

func (e EnvVars) GetGoogleClientSecret() string {
	return e.GoogleClientSecret
}

func (e EnvVars) GetGoogleIssuer() string {
	return e.GoogleIssuer
}

func (e EnvVars) GetAuthEndpoint() string {
	return e.AuthEndpoint
}

func (e EnvVars) GetTokenEndpoint() string {
	return e.TokenEndpoint
}

func (e EnvVars) GetRedirectURL() string {
	if e.RedirectURL != "" {
		return e.RedirectURL
	}
	return fmt.Sprintf("http://localhost:%d/auth/callback", e.port)
}

func (e EnvVars) GetScopes() []string {
	scopes := make([]string, len(analyticsScopes))
	copy(scopes, analyticsScopes)
	return scopes
}

func (e EnvVars) GetDefaultPropertyID() string {
	return e.DefaultProperty
}

func (e EnvVars) GetDashboardURL() string {
	return e.FrontendOrigin + "/dashboard"
}
