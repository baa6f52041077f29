package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"talenthire/internal/domain"
)

func TestCreateAndFetchUser(t *testing.T) {
	users, _ := openTestRepos(t)
	ctx := context.Background()

	user := &domain.User{
		Username:     "alice",
		PasswordHash: "hash",
		Role:         domain.RoleEmployer,
	}
	id, err := users.Create(ctx, user)
	require.NoError(t, err)
	require.Positive(t, id)

	byName, err := users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, id, byName.ID)
	require.Equal(t, domain.RoleEmployer, byName.Role)
	require.Equal(t, "hash", byName.PasswordHash)

	byID, err := users.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "alice", byID.Username)
}

func TestCreateDuplicateUsername(t *testing.T) {
	users, _ := openTestRepos(t)
	ctx := context.Background()

	_, err := users.Create(ctx, &domain.User{Username: "alice", PasswordHash: "h1"})
	require.NoError(t, err)

	_, err = users.Create(ctx, &domain.User{Username: "alice", PasswordHash: "h2"})
	require.ErrorIs(t, err, domain.ErrUserExists)
}

func TestGetUnknownUser(t *testing.T) {
	users, _ := openTestRepos(t)
	ctx := context.Background()

	_, err := users.GetByUsername(ctx, "nobody")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = users.GetByID(ctx, 9999)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateDefaultsRole(t *testing.T) {
	users, _ := openTestRepos(t)
	ctx := context.Background()

	user := &domain.User{Username: "dave", PasswordHash: "h"}
	_, err := users.Create(ctx, user)
	require.NoError(t, err)

	fetched, err := users.GetByUsername(ctx, "dave")
	require.NoError(t, err)
	require.Equal(t, domain.RoleUser, fetched.Role)
}
