package auth

import "errors"

// Validation errors returned by Register.
var (
	ErrMissingField    = errors.New("missing required fields")
	ErrInvalidRole     = errors.New("invalid role")
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")
)

// Authentication errors.
var (
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("user account is disabled")
)

// Token errors returned by TokenManager.Verify.
var (
	ErrTokenMalformed    = errors.New("token is malformed")
	ErrTokenBadSignature = errors.New("token signature is invalid")
	ErrTokenExpired      = errors.New("token has expired")
)

// Authorization errors. Every token failure is reported as ErrUnauthenticated.
var (
	ErrUnauthenticated = errors.New("missing or invalid token")
	ErrForbidden       = errors.New("insufficient role")
)
