package token

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"talenthire/internal/domain"
	"talenthire/internal/repository"
)

const refreshTokenBytes = 64

// Issuer creates access and refresh tokens for verified identities. Callers
// must authenticate the user first; the issuer does not re-check passwords.
type Issuer struct {
	cfg   Config
	creds repository.CredentialRepository
}

func NewIssuer(cfg Config, creds repository.CredentialRepository) (*Issuer, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("token issuer config: %w", err)
	}
	return &Issuer{cfg: cfg, creds: creds}, nil
}

// CreateAccessToken signs a compact HS256 token for the user. The jti claim is
// anti-replay metadata only; nothing checks it server-side today.
func (i *Issuer) CreateAccessToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			ID:        uuid.NewString(),
			Issuer:    i.cfg.Issuer,
			Audience:  jwt.ClaimStrings{i.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.cfg.AccessTokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(i.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

// CreateRefreshToken generates an opaque token and stores it as the user's
// single refresh session, overwriting any previous one.
func (i *Issuer) CreateRefreshToken(ctx context.Context, user *domain.User) (string, error) {
	raw := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	refreshToken := base64.StdEncoding.EncodeToString(raw)

	expiry := time.Now().Add(i.cfg.RefreshTokenTTL)
	if err := i.creds.Save(ctx, user.ID, refreshToken, expiry); err != nil {
		return "", fmt.Errorf("store refresh token: %w", err)
	}
	return refreshToken, nil
}
