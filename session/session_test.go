package session_test

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	errs "github.com/jrsteele09/go-analytics-gateway/internal/errors"
	"github.com/jrsteele09/go-analytics-gateway/session"
	"github.com/stretchr/testify/require"
)

const (
	testSecret  = "test-signing-secret"
	otherSecret = "a-completely-different-secret"
)

func testGrant() session.TokenGrant {
	return session.TokenGrant{
		AccessToken: "ya29.a0AfH6SMBx",
		TokenType:   "Bearer",
		Scope:       "https://www.googleapis.com/auth/analytics.readonly",
		Expiry:      time.Now().Add(55 * time.Minute).Truncate(time.Second),
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	codec := session.NewCodec([]byte(testSecret), time.Hour)
	grant := testGrant()

	value, err := codec.Encode(grant)
	require.NoError(t, err)
	require.NotEmpty(t, value)

	decoded, err := codec.Decode(value)
	require.NoError(t, err)
	require.Equal(t, grant.AccessToken, decoded.AccessToken)
	require.Equal(t, grant.TokenType, decoded.TokenType)
	require.Equal(t, grant.Scope, decoded.Scope)
	require.True(t, grant.Expiry.Equal(decoded.Expiry))
}

func TestDecodeRejectsWrongSecret(t *testing.T) {
	codec := session.NewCodec([]byte(testSecret), time.Hour)
	value, err := codec.Encode(testGrant())
	require.NoError(t, err)

	otherCodec := session.NewCodec([]byte(otherSecret), time.Hour)
	_, err = otherCodec.Decode(value)
	require.ErrorIs(t, err, errs.ErrInvalidSession)
}

func TestDecodeRejectsWrongSecretEvenWhenExpired(t *testing.T) {
	session.NowTimeFunc = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	codec := session.NewCodec([]byte(testSecret), time.Hour)
	value, err := codec.Encode(testGrant())
	session.NowTimeFunc = time.Now
	require.NoError(t, err)

	// Tampered and stale: tampered must win.
	otherCodec := session.NewCodec([]byte(otherSecret), time.Hour)
	_, err = otherCodec.Decode(value)
	require.ErrorIs(t, err, errs.ErrInvalidSession)
	require.NotErrorIs(t, err, errs.ErrExpiredSession)
}

func TestDecodeRejectsCorruptedValue(t *testing.T) {
	codec := session.NewCodec([]byte(testSecret), time.Hour)
	value, err := codec.Encode(testGrant())
	require.NoError(t, err)

	corrupted := []string{
		"not-a-session",
		"a.b",
		value[:len(value)-4] + "AAAA",
		strings.Replace(value, ".", "x", 1),
		"",
	}
	for _, v := range corrupted {
		_, err := codec.Decode(v)
		require.ErrorIs(t, err, errs.ErrInvalidSession, "value %q", v)
	}
}

func TestDecodeReportsExpiry(t *testing.T) {
	defer func() { session.NowTimeFunc = time.Now }()

	issued := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	session.NowTimeFunc = func() time.Time { return issued }

	codec := session.NewCodec([]byte(testSecret), time.Hour)
	value, err := codec.Encode(testGrant())
	require.NoError(t, err)

	// Still inside the ttl.
	session.NowTimeFunc = func() time.Time { return issued.Add(59 * time.Minute) }
	_, err = codec.Decode(value)
	require.NoError(t, err)

	// Past the ttl: expired, not invalid.
	session.NowTimeFunc = func() time.Time { return issued.Add(61 * time.Minute) }
	_, err = codec.Decode(value)
	require.ErrorIs(t, err, errs.ErrExpiredSession)
	require.NotErrorIs(t, err, errs.ErrInvalidSession)
}

func TestEncodedValueNeverCarriesRefreshToken(t *testing.T) {
	// The refresh artifact lives in its own cookie; the signed session must
	// not leak it even though the grant originates from the same exchange.
	codec := session.NewCodec([]byte(testSecret), time.Hour)
	value, err := codec.Encode(testGrant())
	require.NoError(t, err)

	parts := strings.Split(value, ".")
	require.Len(t, parts, 3)
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	require.NotContains(t, string(payload), "refresh")
}
