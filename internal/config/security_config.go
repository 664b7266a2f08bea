package config

import "time"

type SecurityConfig interface {
	GetSessionSecret() []byte
	GetSessionTTL() time.Duration
	GetUpstreamTimeout() time.Duration
	GetEnableRateLimiting() bool
	GetRateLimitRequests() int
	GetRateLimitWindow() time.Duration
	GetTrustProxyHeaders() bool
}

var _ SecurityConfig = EnvVars{}

func (e EnvVars) GetSessionSecret() []byte {
	return []byte(e.JWTSecret)
}

func (e EnvVars) GetSessionTTL() time.Duration {
	return 1 * time.Hour
}

func (e EnvVars) GetUpstreamTimeout() time.Duration {
	if e.UpstreamTimeout <= 0 {
		return 15 * time.Second
	}
	return e.UpstreamTimeout
}

func (e EnvVars) GetTrustProxyHeaders() bool {
	return e.TrustProxy
}

func (e EnvVars) GetEnableRateLimiting() bool {
	return true
}

func (e EnvVars) GetRateLimitRequests() int {
	return 100
}

func (e EnvVars) GetRateLimitWindow() time.Duration {
	return 15 * time.Minute
}
