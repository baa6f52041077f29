package domain

import "time"

// Role is the coarse permission tier attached to a user at registration.
type Role string

const (
	RoleUser     Role = "User"
	RoleAdmin    Role = "Admin"
	RoleEmployer Role = "Employer"
)

// ParseRole maps a request-supplied role name onto a known Role.
// An empty string defaults to RoleUser.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case "":
		return RoleUser, true
	case RoleUser, RoleAdmin, RoleEmployer:
		return Role(s), true
	default:
		return "", false
	}
}

// User represents a registered account of the platform.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
