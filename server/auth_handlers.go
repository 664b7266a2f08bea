package server

import (
	"context"
	"net/http"

	errs "github.com/jrsteele09/go-analytics-gateway/internal/errors"
	"github.com/jrsteele09/go-analytics-gateway/session"
	"golang.org/x/oauth2"
)

// AuthRedirectHandler sends the browser to the provider consent page. Offline
// access and forced re-consent make the provider return a refresh token even
// on repeat logins.
func (s *Server) AuthRedirectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		url, err := s.buildAuthURL()
		if err != nil {
			s.writeError(w, err, "OAuth configuration error")
			return
		}
		http.Redirect(w, r, url, http.StatusFound)
	}
}

func (s *Server) buildAuthURL() (string, error) {
	if s.oauth.ClientID == "" || s.oauth.RedirectURL == "" || s.oauth.Endpoint.AuthURL == "" {
		return "", errs.Wrapf(errs.ErrConfiguration, "oauth client is not fully configured")
	}
	return s.oauth.AuthCodeURL("",
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	), nil
}

// AuthCallbackHandler completes the authorization-code flow: it exchanges the
// code for a token grant, encodes the grant into the session cookie and
// redirects to the dashboard. Every failure is terminal and sets no cookies.
func (s *Server) AuthCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		grant, refreshToken, err := s.exchangeCallback(r)
		if err != nil {
			s.writeError(w, err, "Authentication failed")
			return
		}

		sessionValue, err := s.codec.Encode(grant)
		if err != nil {
			s.writeError(w, err, "Authentication failed")
			return
		}

		s.setSessionCookie(w, sessionValue)
		if refreshToken != "" {
			s.setRefreshCookie(w, refreshToken)
		}

		http.Redirect(w, r, s.config.GetDashboardURL(), http.StatusFound)
	}
}

// exchangeCallback walks the callback state machine: a provider-reported
// error or a missing code is terminal before any outbound call; otherwise the
// code is exchanged exactly once. Codes are single-use, so the exchange is
// never retried.
func (s *Server) exchangeCallback(r *http.Request) (session.TokenGrant, string, error) {
	if errParam := r.URL.Query().Get("error"); errParam != "" {
		return session.TokenGrant{}, "", errs.Wrapf(errs.ErrAuthDenied, "provider reported %q", errParam)
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		return session.TokenGrant{}, "", errs.Wrapf(errs.ErrAuthCodeMissing,
			"no authorization code in callback; possible redirect URI mismatch or consent timeout")
	}

	// The exchange runs on a bounded client so a stalled provider cannot
	// hold the callback open indefinitely.
	ctx := context.WithValue(r.Context(), oauth2.HTTPClient, &http.Client{Timeout: s.config.GetUpstreamTimeout()})
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return session.TokenGrant{}, "", errs.Wrapf(errs.ErrTokenExchangeFailed, "%v", err)
	}

	scope, _ := token.Extra("scope").(string)
	grant := session.TokenGrant{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		Scope:       scope,
		Expiry:      token.Expiry,
	}

	// The refresh token travels in its own cookie and is never embedded in
	// the signed session.
	return grant, token.RefreshToken, nil
}

func (s *Server) setSessionCookie(w http.ResponseWriter, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(s.config.GetSessionTTL().Seconds()),
	})
}

func (s *Server) setRefreshCookie(w http.ResponseWriter, refreshToken string) {
	// No max age: the provider controls the refresh token's lifetime.
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    refreshToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.config.IsProduction(),
	})
}
