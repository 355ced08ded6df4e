package domain

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password so callers cannot tell them apart.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionInvalid     = errors.New("session invalid")
	ErrDeviceUnreachable  = errors.New("device unreachable")

	// Credential source configuration errors.
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrInvalidUser       = errors.New("invalid user record")
)
