package config

import "strings"

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

var _ CorsConfig = EnvVars{}

type AllowedOrigins map[string]struct{}

func (a AllowedOrigins) IsAllowedOrigin(origin string) bool {
	_, ok := a[origin]
	return ok
}

func (a AllowedOrigins) String() string {
	var origins []string
	for k := range a {
		origins = append(origins, k)
	}
	return strings.Join(origins, ", ")
}

// The dashboard frontend is the only cross-origin caller; it sends the session
// cookie, so credentials must be allowed and wildcards are never used.
func (e EnvVars) GetAllowedOrigins() AllowedOrigins {
	return AllowedOrigins{e.FrontendOrigin: {}}
}

func (e EnvVars) GetAllowedMethods() string {
	return "GET"
}

func (e EnvVars) GetAllowedHeaders() string {
	return "Content-Type"
}
