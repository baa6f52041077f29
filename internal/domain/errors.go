package domain

import "errors"

var (
	// ErrInvalidCredentials covers every authentication failure. Login failures
	// are deliberately undifferentiated so callers cannot probe which usernames exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserExists is returned when registering a username that is already taken.
	ErrUserExists = errors.New("user already exists")
	// ErrNotFound indicates a referenced user or session row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden indicates an authenticated caller failed a role or ownership check.
	ErrForbidden = errors.New("forbidden")
)
