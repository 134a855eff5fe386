// Package common defines shared constants and sentinel errors used across
// the server layers of TuckServer. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")
	ErrorConflict     = errors.New("already exists")
	ErrorValidation   = errors.New("validation error")

	// Auth errors. The HTTP boundary collapses all of these into a single
	// 401 so that callers cannot tell why a token was rejected.
	ErrMalformedToken   = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrTokenExpired     = errors.New("token expired")

	// Classification errors.
	ErrUpstreamUnavailable = errors.New("classification provider unavailable")
	ErrUpstreamBadResponse = errors.New("classification provider returned unusable content")
)
