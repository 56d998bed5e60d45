package service

import "errors"

// Failure taxonomy surfaced by the services. Handlers translate these to
// the HTTP envelope; everything else is an internal error.
var (
	// ErrValidation covers missing or malformed input fields.
	ErrValidation = errors.New("validation_failed")

	// ErrDuplicate reports a username or email collision at registration
	// or account update.
	ErrDuplicate = errors.New("duplicate_identity")

	// ErrInvalidCredentials covers unknown identity or wrong password on
	// login and password change. Deliberately coarse.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	// ErrInvalidRefresh covers every way a refresh can fail: bad
	// signature, expiry, unknown identity, or a superseded (reused)
	// token. Collapsed to a single error so callers can't probe which
	// check rejected them.
	ErrInvalidRefresh = errors.New("invalid_refresh_token")

	// ErrNotFound reports a missing identity on profile operations.
	ErrNotFound = errors.New("identity_not_found")
)
