// Package token issues and validates the platform's bearer credentials: short-lived
// signed access tokens and long-lived opaque refresh tokens. Access tokens are
// self-contained and never persisted; the refresh token is the only server-held
// session state.
package token

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every access-token validation failure: bad signature,
// wrong issuer or audience, expiry, or a malformed token string.
var ErrInvalidToken = errors.New("invalid token")

// Config carries the signing parameters shared by every service that issues or
// validates access tokens. It is built once at process start and treated as
// immutable; all consumers receive it by value.
type Config struct {
	Secret          string
	Issuer          string
	Audience        string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

func (c Config) validate() error {
	if strings.TrimSpace(c.Secret) == "" {
		return errors.New("token signing secret is required")
	}
	if c.Issuer == "" {
		return errors.New("token issuer is required")
	}
	if c.Audience == "" {
		return errors.New("token audience is required")
	}
	if c.AccessTokenTTL <= 0 {
		return errors.New("access token ttl must be positive")
	}
	if c.RefreshTokenTTL <= 0 {
		return errors.New("refresh token ttl must be positive")
	}
	return nil
}

// Claims is the access token's claim set. Subject carries the user id as a
// decimal string; it is the single canonical "who is the caller" claim.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
