// Package common defines shared constants and sentinel errors used across
// the account and credential services. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Registry-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("already exists")
	ErrorClosed   = errors.New("registry closed")

	// Input errors, reported by the boundary layers.
	ErrorValidation = errors.New("validation error")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Credential service unreachable, timed out or otherwise failing at the
	// transport level.
	ErrorUnavailable = errors.New("credential service unavailable")

	// Session token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
