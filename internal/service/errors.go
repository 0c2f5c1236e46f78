package service

import "errors"

// Error taxonomy. The HTTP layer maps these to status codes; messages sent to
// clients stay generic so they cannot be used to enumerate accounts.
var (
	// ErrValidation: a required request field is missing or malformed.
	ErrValidation = errors.New("invalid input")

	// ErrEmailTaken: the email already owns an account.
	ErrEmailTaken = errors.New("email is already in use")

	// ErrUnauthorized: bad, expired or replayed token, or a signature failure.
	ErrUnauthorized = errors.New("unauthorized request")

	// ErrInvalidCredentials: email/password mismatch. Deliberately shared
	// between unknown email and wrong password.
	ErrInvalidCredentials = errors.New("email/password mismatch")
)
