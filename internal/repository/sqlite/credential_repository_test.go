package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"talenthire/internal/domain"
	"talenthire/internal/repository"
)

func openTestRepos(t *testing.T) (repository.UserRepository, repository.CredentialRepository) {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	users := NewUserRepository(db)
	creds := NewCredentialRepository(db)
	require.NoError(t, users.Init(context.Background()))
	require.NoError(t, creds.Init(context.Background()))
	return users, creds
}

func createTestUser(t *testing.T, users repository.UserRepository, username string) *domain.User {
	t.Helper()

	user := &domain.User{
		Username:     username,
		PasswordHash: "x",
		Role:         domain.RoleUser,
	}
	_, err := users.Create(context.Background(), user)
	require.NoError(t, err)
	return user
}

func TestSaveRotatesToken(t *testing.T) {
	users, creds := openTestRepos(t)
	user := createTestUser(t, users, "alice")
	ctx := context.Background()
	expiry := time.Now().Add(7 * 24 * time.Hour)

	require.NoError(t, creds.Save(ctx, user.ID, "token-one", expiry))

	found, err := creds.FindByToken(ctx, "token-one")
	require.NoError(t, err)
	require.Equal(t, user.ID, found.ID)
	require.Equal(t, "alice", found.Username)

	require.NoError(t, creds.Save(ctx, user.ID, "token-two", expiry))

	_, err = creds.FindByToken(ctx, "token-one")
	require.ErrorIs(t, err, domain.ErrNotFound, "superseded token must resolve to nothing")

	found, err = creds.FindByToken(ctx, "token-two")
	require.NoError(t, err)
	require.Equal(t, user.ID, found.ID)
}

func TestDeleteIsIdempotent(t *testing.T) {
	users, creds := openTestRepos(t)
	user := createTestUser(t, users, "bob")
	ctx := context.Background()

	require.NoError(t, creds.Save(ctx, user.ID, "token", time.Now().Add(time.Hour)))
	require.NoError(t, creds.Delete(ctx, user.ID))
	require.NoError(t, creds.Delete(ctx, user.ID), "deleting an absent row is a no-op")

	_, err := creds.FindByToken(ctx, "token")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFindByUnknownToken(t *testing.T) {
	_, creds := openTestRepos(t)

	_, err := creds.FindByToken(context.Background(), "never-issued")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOneRowPerUser(t *testing.T) {
	users, creds := openTestRepos(t)
	user := createTestUser(t, users, "carol")
	ctx := context.Background()

	for _, tok := range []string{"t1", "t2", "t3"} {
		require.NoError(t, creds.Save(ctx, user.ID, tok, time.Now().Add(time.Hour)))
	}

	// only the latest token resolves
	for _, tok := range []string{"t1", "t2"} {
		_, err := creds.FindByToken(ctx, tok)
		require.ErrorIs(t, err, domain.ErrNotFound)
	}
	found, err := creds.FindByToken(ctx, "t3")
	require.NoError(t, err)
	require.Equal(t, user.ID, found.ID)
}
