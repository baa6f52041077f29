package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"talenthire/internal/domain"
	"talenthire/internal/repository"
	"talenthire/internal/token"
)

// TokenPair is the result of a successful login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService orchestrates the credential lifecycle: register, login, logout.
type AuthService interface {
	Register(ctx context.Context, username, password string, role domain.Role) (*domain.User, error)
	Login(ctx context.Context, username, password string) (TokenPair, error)
	Logout(ctx context.Context, claims token.Claims) error
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	ClearSession(ctx context.Context, userID int64) error
}

type authService struct {
	users  repository.UserRepository
	creds  repository.CredentialRepository
	issuer *token.Issuer
}

func NewAuthService(users repository.UserRepository, creds repository.CredentialRepository, issuer *token.Issuer) AuthService {
	return &authService{
		users:  users,
		creds:  creds,
		issuer: issuer,
	}
}

func (s *authService) Register(ctx context.Context, username, password string, role domain.Role) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("username is required")
	}
	if password == "" {
		return nil, errors.New("password is required")
	}
	if role == "" {
		role = domain.RoleUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

// Login verifies the password and issues both token types. Unknown usernames
// and wrong passwords produce the same error so the response cannot be used to
// enumerate accounts.
func (s *authService) Login(ctx context.Context, username, password string) (TokenPair, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return TokenPair{}, domain.ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return TokenPair{}, domain.ErrInvalidCredentials
		}
		return TokenPair{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return TokenPair{}, domain.ErrInvalidCredentials
	}

	accessToken, err := s.issuer.CreateAccessToken(user)
	if err != nil {
		return TokenPair{}, err
	}
	refreshToken, err := s.issuer.CreateRefreshToken(ctx, user)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Logout deletes the caller's refresh session. Deleting an already-absent
// session is a no-op, so calling logout twice succeeds both times.
func (s *authService) Logout(ctx context.Context, claims token.Claims) error {
	subject := strings.TrimSpace(claims.Subject)
	if subject == "" {
		return domain.ErrInvalidCredentials
	}
	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return domain.ErrInvalidCredentials
	}
	return s.creds.Delete(ctx, userID)
}

func (s *authService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

// ClearSession force-expires a user's refresh session. Their outstanding access
// tokens stay valid until expiry; only the long-lived credential is revoked.
func (s *authService) ClearSession(ctx context.Context, userID int64) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.creds.Delete(ctx, userID)
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
