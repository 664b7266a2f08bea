// Package session implements the signed, self-contained session carried in
// the browser cookie. There is no server-side session store: the encoded
// value is the session, so validity rests entirely on the signature and
// expiry checks performed here on every request.
package session

import (
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	errs "github.com/jrsteele09/go-analytics-gateway/internal/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// TokenGrant is the provider token bundle embedded in a session. The refresh
// token is deliberately not part of it: it travels in its own cookie and must
// never appear inside the signed session value.
type TokenGrant struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type,omitempty"`
	Scope       string    `json:"scope,omitempty"`
	Expiry      time.Time `json:"expiry,omitzero"`
}

type sessionClaims struct {
	TokenGrant
	jwtlib.RegisteredClaims
}

// Codec signs token grants into session values and verifies them back.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec creates a codec signing with the given secret. Sessions expire ttl
// after encoding, independently of the grant's own expiry.
func NewCodec(secret []byte, ttl time.Duration) *Codec {
	return &Codec{secret: secret, ttl: ttl}
}

// Encode signs the grant into a session value carrying issued-at and
// expires-at claims plus a unique token ID.
func (c *Codec) Encode(grant TokenGrant) (string, error) {
	now := NowTimeFunc()
	claims := sessionClaims{
		TokenGrant: grant,
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(c.ttl)),
			ID:        uuid.New().String(),
		},
	}

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}
	return signed, nil
}

// Decode verifies a session value and returns the embedded grant. Failure
// kinds are distinct: ErrInvalidSession covers tampering, malformed input and
// wrong signing secrets; ErrExpiredSession covers an otherwise valid session
// whose expires-at has passed. A bad signature always wins over expiry so a
// forged session is never reported as merely stale.
func (c *Codec) Decode(value string) (TokenGrant, error) {
	var claims sessionClaims
	_, err := jwtlib.ParseWithClaims(value, &claims,
		func(t *jwtlib.Token) (any, error) { return c.secret, nil },
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(func() time.Time { return NowTimeFunc() }),
		jwtlib.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errs.Is(err, jwtlib.ErrTokenSignatureInvalid):
			return TokenGrant{}, errs.Wrapf(errs.ErrInvalidSession, "signature verification failed")
		case errs.Is(err, jwtlib.ErrTokenExpired):
			return TokenGrant{}, errs.Wrapf(errs.ErrExpiredSession, "session no longer valid")
		default:
			return TokenGrant{}, errs.Wrapf(errs.ErrInvalidSession, "malformed session value")
		}
	}
	return claims.TokenGrant, nil
}
