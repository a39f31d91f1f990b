// Package common defines shared constants and sentinel errors used across
// the store, services and CLI layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Session errors.
	ErrNoSession = errors.New("no user session found")

	// Auth errors. Unknown email and wrong password both map to
	// ErrInvalidCredentials so callers cannot enumerate accounts.
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrCredentialsRequired = errors.New("email and password are required")
	ErrEmailRequired       = errors.New("email is required")
	ErrEmailExists         = errors.New("email already exists")

	// Token errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)
