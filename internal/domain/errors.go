package domain

import "errors"

var (
	// ErrInvalidCredentials covers bad email/password pairs.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrLookupNotFound means a staff ID or surname could not be
	// resolved to an email.
	ErrLookupNotFound = errors.New("lookup returned no account")

	// ErrRegistrationConflict means a unique field (email, staff ID,
	// matric number) already exists upstream.
	ErrRegistrationConflict = errors.New("registration conflict")

	// ErrSessionExpired means a token refresh failed; both tokens and
	// the session cache have already been cleared when it is returned.
	ErrSessionExpired = errors.New("session expired")
)
