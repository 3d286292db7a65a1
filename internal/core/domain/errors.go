package domain

import "errors"

var (
	// ErrBadCredentials is returned when the backend rejects a login attempt.
	ErrBadCredentials = errors.New("invalid username or password")

	// ErrSessionExpired is returned when a 401 survives the single refresh
	// attempt, or when the refresh call itself fails. Callers must treat it
	// as "sign in again", distinct from ordinary network errors.
	ErrSessionExpired = errors.New("session expired")

	// ErrNoPermission is returned when login succeeds but the account has no
	// dashboard access. The session is torn down before this is surfaced.
	ErrNoPermission = errors.New("account has no dashboard access")
)
