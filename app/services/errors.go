package services

import "errors"

var (
	// ErrInvalidCredentials hides whether the username or the password
	// was wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrForbidden is returned when a user acts on content they do not own.
	ErrForbidden = errors.New("operation not allowed")
)
