package auth

import "errors"

var (
	ErrEmailAlreadyExists = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoCredentials      = errors.New("missing or invalid Authorization header")
	ErrTokenInvalid       = errors.New("token is invalid or expired")
	// ErrVerifierUnavailable means the remote identity provider could not
	// be reached; the caller still gets a plain 401.
	ErrVerifierUnavailable = errors.New("token verification unavailable")
)
