package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid, its signature doesn't
	// match, or it names a user that no longer exists.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrDuplicateUsername indicates signup with a username that is already registered.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrInvalidCredentials is returned by sign-in for an unknown username and
	// for a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrPersistence wraps unexpected failures of the user store.
	ErrPersistence = errors.New("user persistence failure")

	// ErrPasswordTooLong indicates a password longer than bcrypt can hash without truncation.
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")
)
