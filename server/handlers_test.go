package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIndexReportsLiveness(t *testing.T) {
	srv := newTestServer(t, &fakeAnalytics{}, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "API is running")
}

func TestHealthPayload(t *testing.T) {
	srv := newTestServer(t, &fakeAnalytics{}, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var health struct {
		Status    string  `json:"status"`
		Uptime    float64 `json:"uptime"`
		Timestamp string  `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	require.Equal(t, "OK", health.Status)
	require.GreaterOrEqual(t, health.Uptime, 0.0)
	_, err := time.Parse(time.RFC3339, health.Timestamp)
	require.NoError(t, err)
}

func TestCorsAllowsConfiguredFrontendOnly(t *testing.T) {
	fake := &fakeAnalytics{body: json.RawMessage(`{}`)}
	srv := newTestServer(t, fake, nil)

	req := httptest.NewRequest(http.MethodGet, "/analytics/accounts", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.AddCookie(validSessionCookie(t))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/analytics/accounts", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	req.AddCookie(validSessionCookie(t))
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestSecurityHeadersPresent(t *testing.T) {
	srv := newTestServer(t, &fakeAnalytics{}, nil)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/google", nil))

	require.Equal(t, "SAMEORIGIN", rec.Header().Get("X-Frame-Options"))
	require.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
