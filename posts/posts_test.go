package posts_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	apperrors "github.com/quillbase/go-blog-server/internal/errors"
	"github.com/quillbase/go-blog-server/posts"
)

type postFixture struct {
	repo    *posts.InMemoryRepo
	ownerID uuid.UUID
	otherID uuid.UUID
}

func setupPostFixture(t *testing.T) *postFixture {
	t.Helper()

	f := &postFixture{
		repo:    posts.NewInMemoryRepo(),
		ownerID: uuid.New(),
		otherID: uuid.New(),
	}

	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	seed := []posts.Post{
		{ID: uuid.New(), OwnerID: f.ownerID, Title: "public one", CreatedAt: base},
		{ID: uuid.New(), OwnerID: f.ownerID, Title: "owner private", IsPrivate: true, CreatedAt: base.Add(time.Hour)},
		{ID: uuid.New(), OwnerID: f.otherID, Title: "other private", IsPrivate: true, CreatedAt: base.Add(2 * time.Hour)},
	}
	for i := range seed {
		require.NoError(t, f.repo.Create(context.Background(), &seed[i]))
	}
	return f
}

func titles(list []*posts.Post) []string {
	out := make([]string, 0, len(list))
	for _, p := range list {
		out = append(out, p.Title)
	}
	return out
}

func TestListPublicExcludesPrivate(t *testing.T) {
	f := setupPostFixture(t)

	list, err := f.repo.ListPublic(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"public one"}, titles(list))
}

func TestListVisibleToIncludesOwnPrivate(t *testing.T) {
	f := setupPostFixture(t)

	list, err := f.repo.ListVisibleTo(context.Background(), f.ownerID)
	require.NoError(t, err)
	require.Equal(t, []string{"public one", "owner private"}, titles(list))
}

func TestUpdateRequiresOwnership(t *testing.T) {
	f := setupPostFixture(t)

	list, err := f.repo.ListVisibleTo(context.Background(), f.ownerID)
	require.NoError(t, err)
	target := list[0]

	target.Title = "renamed"
	require.NoError(t, f.repo.Update(context.Background(), target, f.ownerID))

	err = f.repo.Update(context.Background(), target, f.otherID)
	require.ErrorIs(t, err, apperrors.ErrPostNotFound)
}

func TestUpdatePreservesOwnerAndCreatedAt(t *testing.T) {
	f := setupPostFixture(t)

	list, err := f.repo.ListPublic(context.Background())
	require.NoError(t, err)
	original := *list[0]

	updated := original
	updated.Title = "renamed"
	updated.OwnerID = f.otherID // must be ignored
	require.NoError(t, f.repo.Update(context.Background(), &updated, f.ownerID))

	require.Equal(t, original.OwnerID, updated.OwnerID)
	require.Equal(t, original.CreatedAt, updated.CreatedAt)
}

func TestDeleteRequiresOwnership(t *testing.T) {
	f := setupPostFixture(t)

	list, err := f.repo.ListPublic(context.Background())
	require.NoError(t, err)
	target := list[0]

	require.ErrorIs(t,
		f.repo.Delete(context.Background(), target.ID, f.otherID),
		apperrors.ErrPostNotFound)

	require.NoError(t, f.repo.Delete(context.Background(), target.ID, f.ownerID))

	list, err = f.repo.ListPublic(context.Background())
	require.NoError(t, err)
	require.Empty(t, list)
}
