package config

type Config interface {
	EnvConfig
	CorsConfig
	OAuthConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	IsProduction() bool
}

type mainConfig struct {
	EnvVars
}

// New builds the process-wide configuration. The listening port must already
// be resolved because the OAuth redirect URI depends on it; the returned value
// is immutable after construction and is shared by every handler.
func New(port int) (Config, error) {
	vars, err := parseEnv(port)
	if err != nil {
		return nil, err
	}
	return mainConfig{EnvVars: vars}, nil
}
