// Package common defines shared constants and sentinel errors used across
// HealthKeeper components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrInternal         = errors.New("internal error")
	ErrNotAuthenticated = errors.New("not authenticated")

	// Input errors: no I/O was attempted.
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("already exists")

	// Sign-in failures. Deliberately generic so callers cannot tell a missing
	// account from a wrong password (account enumeration).
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Remote collaborator errors.
	ErrTransport = errors.New("remote unavailable")

	// Decryption or parse failure of a payload that should have been intact.
	ErrDataIntegrity = errors.New("data integrity error")
)
