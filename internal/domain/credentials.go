package domain

import "time"

// Credentials is the single server-held refresh session for a user.
// At most one row exists per user; a new login overwrites it.
type Credentials struct {
	UserID       int64
	RefreshToken string
	Expiry       time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
