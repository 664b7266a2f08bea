package errors

import (
	"errors"
	"fmt"
)

// Common error types for the analytics gateway
var (
	// Startup errors
	ErrConfiguration = errors.New("configuration error")

	// OAuth callback errors
	ErrAuthDenied          = errors.New("authorization denied by provider")
	ErrAuthCodeMissing     = errors.New("authorization code missing")
	ErrTokenExchangeFailed = errors.New("token exchange failed")

	// Session errors
	ErrInvalidSession = errors.New("invalid session")
	ErrExpiredSession = errors.New("session expired")
	ErrUnauthorized   = errors.New("unauthorized")

	// Upstream errors
	ErrExternalService = errors.New("external service error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
