package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jrsteele09/go-analytics-gateway/analytics"
	"github.com/jrsteele09/go-analytics-gateway/internal/config"
	"github.com/jrsteele09/go-analytics-gateway/session"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// Server is the authentication broker and proxy gateway. All of its fields
// are set once in New and never mutated afterwards; per-request state lives
// exclusively in the request context.
type Server struct {
	env       string // Environment (e.g., "DEV", "production")
	mux       *http.ServeMux
	routes    []string
	config    config.Config
	codec     *session.Codec
	oauth     *oauth2.Config
	analytics analytics.Factory
	limiter   *rateLimiter
	startTime time.Time
}

// New constructs the server. The oauth2 configuration is built exactly once
// here, after the listening port (and therefore the redirect URI) is known.
func New(cfg config.Config, factory analytics.Factory) *Server {
	s := &Server{
		mux:       http.NewServeMux(),
		config:    cfg,
		codec:     session.NewCodec(cfg.GetSessionSecret(), cfg.GetSessionTTL()),
		oauth:     oauthConfig(cfg),
		analytics: factory,
		startTime: time.Now(),
	}
	s.env = cfg.GetEnv()
	if cfg.GetEnableRateLimiting() {
		s.limiter = newRateLimiter(cfg.GetRateLimitRequests(), cfg.GetRateLimitWindow())
	}

	s.initRoutes()
	s.logRoutes()

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func oauthConfig(cfg config.Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.GetGoogleClientID(),
		ClientSecret: cfg.GetGoogleClientSecret(),
		RedirectURL:  cfg.GetRedirectURL(),
		Scopes:       cfg.GetScopes(),
		Endpoint:     resolveEndpoint(cfg),
	}
}

// resolveEndpoint discovers the provider's OAuth endpoints from its issuer,
// falling back to the statically configured URLs when discovery is
// unavailable (offline startup, tests).
func resolveEndpoint(cfg config.OAuthConfig) oauth2.Endpoint {
	static := oauth2.Endpoint{
		AuthURL:  cfg.GetAuthEndpoint(),
		TokenURL: cfg.GetTokenEndpoint(),
	}

	issuer := cfg.GetGoogleIssuer()
	if issuer == "" {
		return static
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		log.Warn().Err(err).Str("issuer", issuer).Msg("OIDC discovery failed, using configured endpoints")
		return static
	}
	return provider.Endpoint()
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + resetColor
	} else {
		displayMethod = gray + paddedMethod + resetColor
	}
	log.Debug().Msgf("[%-19s] %s", displayMethod, path)
}
