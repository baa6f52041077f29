package repository

import (
	"context"
	"time"

	"talenthire/internal/domain"
)

// CredentialRepository persists the per-user refresh session.
type CredentialRepository interface {
	Init(ctx context.Context) error
	// Save upserts the session row for the user atomically, overwriting any
	// previous refresh token. The overwrite is the rotation mechanism: after
	// Save, the prior token value for that user resolves to nothing.
	Save(ctx context.Context, userID int64, refreshToken string, expiry time.Time) error
	// Delete removes the session row. Absence is not an error.
	Delete(ctx context.Context, userID int64) error
	// FindByToken returns the user owning the given refresh token value, or
	// domain.ErrNotFound. No endpoint calls this yet; it is the hook for a
	// future refresh-based re-issuance flow.
	FindByToken(ctx context.Context, refreshToken string) (*domain.User, error)
}
