package users_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	apperrors "github.com/quillbase/go-blog-server/internal/errors"
	"github.com/quillbase/go-blog-server/users"
)

func TestValidatePasswordStrength(t *testing.T) {
	require.NoError(t, users.ValidatePasswordStrength("Passw0rd"))

	require.Error(t, users.ValidatePasswordStrength("Pw0rd"), "too short")
	require.Error(t, users.ValidatePasswordStrength("passw0rd"), "no uppercase")
	require.Error(t, users.ValidatePasswordStrength("PASSW0RD"), "no lowercase")
	require.Error(t, users.ValidatePasswordStrength("Password"), "no number")
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := users.HashPassword("Passw0rd")
	require.NoError(t, err)
	require.NotEqual(t, "Passw0rd", hash)

	require.True(t, users.CheckPasswordHash("Passw0rd", hash))
	require.False(t, users.CheckPasswordHash("wrong", hash))
	require.False(t, users.CheckPasswordHash("Passw0rd", "not-a-hash"))
}

func TestUserJSONNeverExposesPasswordHash(t *testing.T) {
	user := users.User{
		ID:             uuid.New(),
		Name:           "Ada",
		Email:          "ada@example.com",
		HashedPassword: "secret-hash",
	}

	data, err := json.Marshal(user)
	require.NoError(t, err)
	require.NotContains(t, string(data), "secret-hash")
}

func TestInMemoryRepoGetByEmail(t *testing.T) {
	repo := users.NewInMemoryRepo()
	user := &users.User{ID: uuid.New(), Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, repo.Upsert(context.Background(), user))

	found, err := repo.GetByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	require.Equal(t, user.ID, found.ID)

	_, err = repo.GetByEmail(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestInMemoryRepoListPagination(t *testing.T) {
	repo := users.NewInMemoryRepo()
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Upsert(context.Background(), &users.User{ID: uuid.New()}))
	}

	page, err := repo.List(context.Background(), 0, 3)
	require.NoError(t, err)
	require.Len(t, page, 3)

	page, err = repo.List(context.Background(), 3, 3)
	require.NoError(t, err)
	require.Len(t, page, 2)

	page, err = repo.List(context.Background(), 10, 3)
	require.NoError(t, err)
	require.Empty(t, page)
}
