package roles_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/quillbase/go-blog-server/roles"
)

func TestNewSetDiscardsDuplicates(t *testing.T) {
	s := roles.NewSet("admin", "user", "admin")

	require.Len(t, s, 2)
	require.True(t, s.Contains("admin"))
	require.True(t, s.Contains("user"))
	require.False(t, s.Contains("editor"))
}

func TestSetContainsAny(t *testing.T) {
	s := roles.NewSet("editor")

	require.True(t, s.ContainsAny("admin", "editor"))
	require.False(t, s.ContainsAny("admin", "moderator"))
	require.False(t, s.ContainsAny())
	require.False(t, roles.Set{}.ContainsAny("admin"))
}

func TestSetNames(t *testing.T) {
	require.ElementsMatch(t, []string{"admin", "user"}, roles.NewSet("admin", "user").Names())
	require.Empty(t, roles.NewSet().Names())
}

func TestInMemoryRepoAssignUnassign(t *testing.T) {
	repo := roles.NewInMemoryRepo()
	userID := uuid.New()

	require.NoError(t, repo.EnsureRole(context.Background(), roles.Role{Name: "editor"}))
	require.NoError(t, repo.Assign(context.Background(), userID, "editor"))
	// Re-assigning the same pair is not an error
	require.NoError(t, repo.Assign(context.Background(), userID, "editor"))

	names, err := repo.RoleNamesForUser(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, []string{"editor"}, names)

	require.NoError(t, repo.Unassign(context.Background(), userID, "editor"))
	names, err = repo.RoleNamesForUser(context.Background(), userID)
	require.NoError(t, err)
	require.Empty(t, names)
}

func TestResolverReturnsAssignedRoles(t *testing.T) {
	repo := roles.NewInMemoryRepo()
	userID := uuid.New()
	require.NoError(t, repo.Assign(context.Background(), userID, "user"))
	require.NoError(t, repo.Assign(context.Background(), userID, "admin"))

	resolver := roles.NewResolver(repo, zerolog.Nop())
	set := resolver.RolesFor(context.Background(), userID)

	require.True(t, set.Contains("user"))
	require.True(t, set.Contains("admin"))
	require.Len(t, set, 2)
}

func TestResolverUnknownUserGetsEmptySet(t *testing.T) {
	resolver := roles.NewResolver(roles.NewInMemoryRepo(), zerolog.Nop())

	set := resolver.RolesFor(context.Background(), uuid.New())

	require.NotNil(t, set)
	require.Empty(t, set)
}

// failingRepo simulates a role store outage.
type failingRepo struct {
	roles.Repo
	err error
}

func (r failingRepo) RoleNamesForUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return nil, r.err
}

func TestResolverDegradesToEmptySetOnStoreFailure(t *testing.T) {
	resolver := roles.NewResolver(failingRepo{
		Repo: roles.NewInMemoryRepo(),
		err:  context.DeadlineExceeded,
	}, zerolog.Nop())

	set := resolver.RolesFor(context.Background(), uuid.New())

	require.NotNil(t, set)
	require.Empty(t, set)
}
