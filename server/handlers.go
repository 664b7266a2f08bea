package server

import (
	"encoding/json"
	"net/http"
	"time"

	errs "github.com/jrsteele09/go-analytics-gateway/internal/errors"
	"github.com/rs/zerolog/log"
)

const contentTypeJSON = "application/json; charset=utf-8"

// IndexHandler is the liveness route.
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(s.config.GetAppName() + " API is running"))
	}
}

// HealthHandler reports process health and uptime.
func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":    "OK",
			"uptime":    time.Since(s.startTime).Seconds(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Err(err).Msg("Failed to encode response body")
	}
}

// writeRawJSON relays an upstream payload without transformation.
func writeRawJSON(w http.ResponseWriter, body json.RawMessage) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Err(err).Msg("Failed to relay response body")
	}
}

// writeError converts a taxonomy error into its HTTP response at the handler
// boundary. message is the caller-facing summary; the error's own text goes
// into details so the browser side can display what went wrong instead of
// silently looping.
func (s *Server) writeError(w http.ResponseWriter, err error, message string) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		log.Err(err).Msg(message)
	}
	writeJSON(w, status, errorResponse{Error: message, Details: err.Error()})
}

func statusForError(err error) int {
	switch {
	case errs.Is(err, errs.ErrUnauthorized),
		errs.Is(err, errs.ErrInvalidSession),
		errs.Is(err, errs.ErrExpiredSession):
		return http.StatusUnauthorized
	default:
		// ErrAuthDenied, ErrAuthCodeMissing, ErrTokenExchangeFailed,
		// ErrExternalService, ErrConfiguration and anything unclassified.
		return http.StatusInternalServerError
	}
}
