package token

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Validator checks access tokens locally. Validation is pure: no store access,
// no I/O, so a token cannot be revoked before it expires.
type Validator struct {
	cfg Config
}

func NewValidator(cfg Config) (*Validator, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("token validator config: %w", err)
	}
	return &Validator{cfg: cfg}, nil
}

// Validate parses the token string and verifies signature, issuer, audience and
// expiry. All failures collapse into ErrInvalidToken.
func (v *Validator) Validate(tokenString string) (Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(t *jwt.Token) (any, error) {
			return []byte(v.cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(v.cfg.Issuer),
		jwt.WithAudience(v.cfg.Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
