package server

import (
	"net/http"

	"github.com/jrsteele09/go-analytics-gateway/analytics"
	errs "github.com/jrsteele09/go-analytics-gateway/internal/errors"
)

// analyticsService binds a Service to the credential the gate derived for
// this request. The service lives for this one call and is then discarded.
func (s *Server) analyticsService(r *http.Request) (analytics.Service, error) {
	cred, ok := credentialFromContext(r.Context())
	if !ok {
		return nil, errs.Wrapf(errs.ErrUnauthorized, "no credential in request context")
	}
	return s.analytics(cred), nil
}

// AccountsHandler proxies the account listing.
func (s *Server) AccountsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc, err := s.analyticsService(r)
		if err != nil {
			s.writeError(w, err, "Unauthorized")
			return
		}

		body, err := svc.ListAccounts(r.Context())
		if err != nil {
			s.writeError(w, err, "Failed to fetch accounts")
			return
		}
		writeRawJSON(w, body)
	}
}

// PropertiesHandler proxies the property listing.
func (s *Server) PropertiesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc, err := s.analyticsService(r)
		if err != nil {
			s.writeError(w, err, "Unauthorized")
			return
		}

		body, err := svc.ListProperties(r.Context())
		if err != nil {
			s.writeError(w, err, "Failed to fetch properties")
			return
		}
		writeRawJSON(w, body)
	}
}

// DataHandler proxies the dashboard report, defaulting to the configured
// property when the query does not name one.
func (s *Server) DataHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc, err := s.analyticsService(r)
		if err != nil {
			s.writeError(w, err, "Unauthorized")
			return
		}

		propertyID := r.URL.Query().Get("property")
		if propertyID == "" {
			propertyID = s.config.GetDefaultPropertyID()
		}

		body, err := svc.RunReport(r.Context(), propertyID)
		if err != nil {
			s.writeError(w, err, "Failed to fetch analytics data")
			return
		}
		writeRawJSON(w, body)
	}
}
