package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	errs "github.com/jrsteele09/go-analytics-gateway/internal/errors"
)

const defaultBasePort = 5000

// EnvVars is the environment-backed configuration state. It is parsed once at
// startup and implements every Config sub-interface.
type EnvVars struct {
	AppName string `env:"APP_NAME" envDefault:"Analytics Gateway"`
	Env     string `env:"ENV" envDefault:"DEV"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	JWTSecret          string `env:"JWT_SECRET"`

	GoogleIssuer  string `env:"GOOGLE_ISSUER" envDefault:"https://accounts.google.com"`
	AuthEndpoint  string `env:"GOOGLE_AUTH_URL" envDefault:"https://accounts.google.com/o/oauth2/auth"`
	TokenEndpoint string `env:"GOOGLE_TOKEN_URL" envDefault:"https://oauth2.googleapis.com/token"`

	// RedirectURL overrides the derived http://localhost:<port>/auth/callback
	// value, e.g. when running behind a public hostname.
	RedirectURL string `env:"REDIRECT_URL"`

	FrontendOrigin  string `env:"FRONTEND_ORIGIN" envDefault:"http://localhost:3000"`
	DefaultProperty string `env:"GA_DEFAULT_PROPERTY" envDefault:"properties/483844490"`

	// UpstreamTimeout bounds every outbound provider call, the token
	// exchange included.
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"15s"`

	// TrustProxy controls whether X-Forwarded-For is believed when deriving
	// the client IP. Off unless the process sits behind a trusted proxy.
	TrustProxy bool `env:"TRUST_PROXY" envDefault:"false"`

	port int
}

var requiredEnvVars = []string{"GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_SECRET", "JWT_SECRET"}

func parseEnv(port int) (EnvVars, error) {
	var vars EnvVars
	if err := env.Parse(&vars); err != nil {
		return EnvVars{}, errs.Wrapf(errs.ErrConfiguration, "parsing environment: %v", err)
	}

	var missing []string
	for _, name := range requiredEnvVars {
		if os.Getenv(name) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return EnvVars{}, errs.Wrapf(errs.ErrConfiguration, "missing required environment variables: %s", strings.Join(missing, ", "))
	}

	vars.port = port
	return vars, nil
}

var _ EnvConfig = EnvVars{}

// BasePort returns the first port the server attempts to bind; discovery scans
// upwards from here.
func BasePort() int {
	value := os.Getenv("PORT")
	if value == "" {
		return defaultBasePort
	}
	port, err := strconv.Atoi(value)
	if err != nil || port <= 0 {
		return defaultBasePort
	}
	return port
}

func (e EnvVars) GetPort() string {
	return fmt.Sprintf(":%d", e.port)
}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetEnv() string {
	return e.Env
}

func (e EnvVars) IsProduction() bool {
	return strings.EqualFold(e.Env, "production")
}
