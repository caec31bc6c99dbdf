package service

import "errors"

// Business failure kinds returned by the services. The transport layer maps
// them onto status codes; no other errors cross the service boundary
// unclassified.
var (
	// ErrInvalidCredentials covers both unknown username and wrong
	// password, so login failures cannot be used to probe for accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUsernameTaken    = errors.New("username already in use")
	ErrPasswordMismatch = errors.New("passwords do not match")
)
