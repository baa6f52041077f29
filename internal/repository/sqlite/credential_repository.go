package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"talenthire/internal/domain"
	"talenthire/internal/repository"
)

const createCredentialsTable = `
CREATE TABLE IF NOT EXISTS credentials (
	user_id INTEGER PRIMARY KEY REFERENCES users(id),
	refresh_token TEXT NOT NULL,
	expiry DATETIME NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type CredentialRepository struct {
	db *sql.DB
}

func NewCredentialRepository(db *sql.DB) repository.CredentialRepository {
	return &CredentialRepository{db: db}
}

func (r *CredentialRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createCredentialsTable); err != nil {
		return fmt.Errorf("create credentials table: %w", err)
	}
	return nil
}

// Save rotates the user's refresh session in a single statement. Two concurrent
// logins for the same user cannot both insert: the conflict target on user_id
// turns the loser into an update.
func (r *CredentialRepository) Save(ctx context.Context, userID int64, refreshToken string, expiry time.Time) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
INSERT INTO credentials (user_id, refresh_token, expiry, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(user_id) DO UPDATE SET
	refresh_token = excluded.refresh_token,
	expiry = excluded.expiry,
	updated_at = excluded.updated_at`,
		userID,
		refreshToken,
		expiry.UTC(),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

func (r *CredentialRepository) Delete(ctx context.Context, userID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM credentials WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}

func (r *CredentialRepository) FindByToken(ctx context.Context, refreshToken string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT u.id, u.username, u.password_hash, u.role, u.created_at, u.updated_at
FROM credentials c
JOIN users u ON u.id = c.user_id
WHERE c.refresh_token = ?`,
		refreshToken,
	)
	return scanUser(row)
}
