// Package common defines shared sentinel errors used across the
// application layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors. Wrapped with a field detail, e.g.
	// fmt.Errorf("%w: invalid total", ErrorValidation).
	ErrorValidation = errors.New("validation error")

	// Auth errors (invalid or malformed session token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
