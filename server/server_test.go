package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/jrsteele09/go-analytics-gateway/analytics"
	"github.com/jrsteele09/go-analytics-gateway/internal/config"
	"github.com/jrsteele09/go-analytics-gateway/server"
	"github.com/jrsteele09/go-analytics-gateway/session"
	"github.com/stretchr/testify/require"
)

const (
	testJWTSecret    = "test-jwt-secret"
	testClientID     = "test-client-id"
	testClientSecret = "test-client-secret"
	testPort         = 5000
)

// fakeAnalytics implements analytics.Service and records invocations so the
// gate tests can assert the proxy is never reached on failure.
type fakeAnalytics struct {
	body         json.RawMessage
	err          error
	calls        int
	lastProperty string
}

func (f *fakeAnalytics) ListAccounts(ctx context.Context) (json.RawMessage, error) {
	f.calls++
	return f.body, f.err
}

func (f *fakeAnalytics) ListProperties(ctx context.Context) (json.RawMessage, error) {
	f.calls++
	return f.body, f.err
}

func (f *fakeAnalytics) RunReport(ctx context.Context, propertyID string) (json.RawMessage, error) {
	f.calls++
	f.lastProperty = propertyID
	return f.body, f.err
}

func setupEnv(t *testing.T, overrides map[string]string) {
	t.Helper()
	vars := map[string]string{
		"GOOGLE_CLIENT_ID":     testClientID,
		"GOOGLE_CLIENT_SECRET": testClientSecret,
		"JWT_SECRET":           testJWTSecret,
		// Empty issuer skips OIDC discovery so tests stay hermetic.
		"GOOGLE_ISSUER": "",
	}
	for k, v := range overrides {
		vars[k] = v
	}
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func newTestServer(t *testing.T, fake *fakeAnalytics, overrides map[string]string) *server.Server {
	t.Helper()
	setupEnv(t, overrides)
	cfg, err := config.New(testPort)
	require.NoError(t, err)

	factory := func(analytics.Credential) analytics.Service { return fake }
	return server.New(cfg, factory)
}

func sessionCookie(t *testing.T, grant session.TokenGrant) *http.Cookie {
	t.Helper()
	codec := session.NewCodec([]byte(testJWTSecret), time.Hour)
	value, err := codec.Encode(grant)
	require.NoError(t, err)
	return &http.Cookie{Name: "token", Value: value}
}

func validSessionCookie(t *testing.T) *http.Cookie {
	return sessionCookie(t, session.TokenGrant{
		AccessToken: "ya29.test-token",
		TokenType:   "Bearer",
		Expiry:      time.Now().Add(time.Hour),
	})
}

func decodeErrorBody(t *testing.T, body []byte) (errMsg, details string) {
	t.Helper()
	var resp struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp.Error, resp.Details
}
