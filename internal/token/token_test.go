package token

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"talenthire/internal/domain"
)

func testConfig() Config {
	return Config{
		Secret:          "test-secret",
		Issuer:          "talenthire-identity",
		Audience:        "talenthire-services",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

type fakeCredentialStore struct {
	saved       map[int64]string
	savedExpiry map[int64]time.Time
}

func newFakeCredentialStore() *fakeCredentialStore {
	return &fakeCredentialStore{
		saved:       make(map[int64]string),
		savedExpiry: make(map[int64]time.Time),
	}
}

func (f *fakeCredentialStore) Init(ctx context.Context) error { return nil }

func (f *fakeCredentialStore) Save(ctx context.Context, userID int64, refreshToken string, expiry time.Time) error {
	f.saved[userID] = refreshToken
	f.savedExpiry[userID] = expiry
	return nil
}

func (f *fakeCredentialStore) Delete(ctx context.Context, userID int64) error {
	delete(f.saved, userID)
	return nil
}

func (f *fakeCredentialStore) FindByToken(ctx context.Context, refreshToken string) (*domain.User, error) {
	for id, tok := range f.saved {
		if tok == refreshToken {
			return &domain.User{ID: id}, nil
		}
	}
	return nil, domain.ErrNotFound
}

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Parallel()

	issuer, err := NewIssuer(testConfig(), nil)
	require.NoError(t, err)
	validator, err := NewValidator(testConfig())
	require.NoError(t, err)

	user := &domain.User{ID: 42, Username: "alice", Role: domain.RoleEmployer}
	signed, err := issuer.CreateAccessToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := validator.Validate(signed)
	require.NoError(t, err)
	require.Equal(t, "42", claims.Subject)
	require.Equal(t, "Employer", claims.Role)
	require.NotEmpty(t, claims.ID, "jti must be populated")
}

func TestAccessTokenUniqueID(t *testing.T) {
	t.Parallel()

	issuer, err := NewIssuer(testConfig(), nil)
	require.NoError(t, err)
	validator, err := NewValidator(testConfig())
	require.NoError(t, err)

	user := &domain.User{ID: 1, Username: "alice", Role: domain.RoleUser}
	first, err := issuer.CreateAccessToken(user)
	require.NoError(t, err)
	second, err := issuer.CreateAccessToken(user)
	require.NoError(t, err)

	c1, err := validator.Validate(first)
	require.NoError(t, err)
	c2, err := validator.Validate(second)
	require.NoError(t, err)
	require.NotEqual(t, c1.ID, c2.ID)
}

func TestValidateRejectsExpired(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.AccessTokenTTL = time.Nanosecond
	issuer, err := NewIssuer(cfg, nil)
	require.NoError(t, err)

	signed, err := issuer.CreateAccessToken(&domain.User{ID: 1, Role: domain.RoleUser})
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	validator, err := NewValidator(testConfig())
	require.NoError(t, err)
	_, err = validator.Validate(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	issuer, err := NewIssuer(testConfig(), nil)
	require.NoError(t, err)
	signed, err := issuer.CreateAccessToken(&domain.User{ID: 1, Role: domain.RoleUser})
	require.NoError(t, err)

	cfg := testConfig()
	cfg.Secret = "other-secret"
	validator, err := NewValidator(cfg)
	require.NoError(t, err)

	_, err = validator.Validate(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsWrongIssuerAndAudience(t *testing.T) {
	t.Parallel()

	issuer, err := NewIssuer(testConfig(), nil)
	require.NoError(t, err)
	signed, err := issuer.CreateAccessToken(&domain.User{ID: 1, Role: domain.RoleUser})
	require.NoError(t, err)

	badIssuer := testConfig()
	badIssuer.Issuer = "someone-else"
	v1, err := NewValidator(badIssuer)
	require.NoError(t, err)
	_, err = v1.Validate(signed)
	require.ErrorIs(t, err, ErrInvalidToken)

	badAudience := testConfig()
	badAudience.Audience = "other-services"
	v2, err := NewValidator(badAudience)
	require.NoError(t, err)
	_, err = v2.Validate(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsMalformed(t *testing.T) {
	t.Parallel()

	validator, err := NewValidator(testConfig())
	require.NoError(t, err)
	_, err = validator.Validate("not.a.jwt")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewIssuerRequiresSecret(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Secret = "   "
	_, err := NewIssuer(cfg, nil)
	require.Error(t, err)

	_, err = NewValidator(cfg)
	require.Error(t, err)
}

func TestCreateRefreshToken(t *testing.T) {
	t.Parallel()

	store := newFakeCredentialStore()
	issuer, err := NewIssuer(testConfig(), store)
	require.NoError(t, err)

	user := &domain.User{ID: 7, Username: "bob", Role: domain.RoleUser}
	first, err := issuer.CreateRefreshToken(context.Background(), user)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(first)
	require.NoError(t, err)
	require.Len(t, raw, 64)
	require.Equal(t, first, store.saved[7])

	expiry := store.savedExpiry[7]
	require.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiry, time.Minute)

	second, err := issuer.CreateRefreshToken(context.Background(), user)
	require.NoError(t, err)
	require.NotEqual(t, first, second)
	require.Equal(t, second, store.saved[7], "new token must overwrite the old one")
}
