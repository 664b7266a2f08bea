package server

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-analytics-gateway/analytics"
	errs "github.com/jrsteele09/go-analytics-gateway/internal/errors"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyCredential stores the per-request upstream credential
const ContextKeyCredential ContextKey = "credential"

// RequireSession is the authentication gate for proxy routes. A missing
// cookie is reported as Unauthorized, distinct from a tampered or stale one,
// and any failure short-circuits before the proxy handler runs. On success a
// fresh upstream credential is derived from the decoded grant and attached to
// this request's context only; no client object is ever shared or mutated
// across requests.
func (s *Server) RequireSession() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionCookieName)
			if err != nil {
				s.writeError(w, errs.Wrapf(errs.ErrUnauthorized, "no session cookie"), "Unauthorized")
				return
			}

			grant, err := s.codec.Decode(cookie.Value)
			if err != nil {
				s.writeError(w, err, "Invalid token")
				return
			}

			cred := analytics.DeriveCredential(grant)
			ctx := context.WithValue(r.Context(), ContextKeyCredential, cred)
			next(w, r.WithContext(ctx))
		}
	}
}

func credentialFromContext(ctx context.Context) (analytics.Credential, bool) {
	cred, ok := ctx.Value(ContextKeyCredential).(analytics.Credential)
	return cred, ok
}
