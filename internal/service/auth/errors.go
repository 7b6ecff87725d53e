// Package auth provides password hashing and session token services.
package auth

import "errors"

// Common authentication errors.
var (
	// ErrInvalidToken is returned when a session token is malformed or
	// its signature does not verify.
	ErrInvalidToken = errors.New("invalid session token")

	// ErrExpiredToken is returned when a session token is past its expiry.
	ErrExpiredToken = errors.New("session token expired")

	// ErrInvalidCredentials is returned when a username/password pair does
	// not match a stored user. Callers must not distinguish between an
	// unknown username and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
