package redisrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	apperrors "github.com/quillbase/go-blog-server/internal/errors"
	"github.com/quillbase/go-blog-server/sessions"
	"github.com/quillbase/go-blog-server/sessions/redisrepo"
)

type repoFixture struct {
	mini *miniredis.Miniredis
	repo *redisrepo.Repo
}

func setupRepoFixture(t *testing.T) *repoFixture {
	t.Helper()

	mini := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return &repoFixture{mini: mini, repo: redisrepo.New(rdb)}
}

func newSession(userID uuid.UUID) *sessions.Session {
	now := time.Now().UTC().Truncate(time.Second)
	return &sessions.Session{
		ID:            uuid.NewString(),
		UserID:        userID,
		ExpiresAt:     now.Add(30 * 24 * time.Hour),
		IdleExpiresAt: now.Add(7 * 24 * time.Hour),
	}
}

func TestInsertGetRoundTrip(t *testing.T) {
	f := setupRepoFixture(t)
	session := newSession(uuid.New())

	require.NoError(t, f.repo.Insert(context.Background(), session))

	got, err := f.repo.Get(context.Background(), session.ID)
	require.NoError(t, err)
	require.Equal(t, session.ID, got.ID)
	require.Equal(t, session.UserID, got.UserID)
	require.True(t, session.ExpiresAt.Equal(got.ExpiresAt))
	require.True(t, session.IdleExpiresAt.Equal(got.IdleExpiresAt))
}

func TestInsertSetsKeyTTLAtAbsoluteExpiry(t *testing.T) {
	f := setupRepoFixture(t)
	session := newSession(uuid.New())

	require.NoError(t, f.repo.Insert(context.Background(), session))

	ttl := f.mini.TTL("sess:" + session.ID)
	require.Greater(t, ttl, 29*24*time.Hour)
	require.LessOrEqual(t, ttl, 30*24*time.Hour)
}

func TestGetMissingSession(t *testing.T) {
	f := setupRepoFixture(t)

	_, err := f.repo.Get(context.Background(), "no-such-session")
	require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestUpdateIdleExpiryPreservesTTL(t *testing.T) {
	f := setupRepoFixture(t)
	session := newSession(uuid.New())
	require.NoError(t, f.repo.Insert(context.Background(), session))
	ttlBefore := f.mini.TTL("sess:" + session.ID)

	newIdle := session.IdleExpiresAt.Add(24 * time.Hour)
	require.NoError(t, f.repo.UpdateIdleExpiry(context.Background(), session.ID, newIdle))

	got, err := f.repo.Get(context.Background(), session.ID)
	require.NoError(t, err)
	require.True(t, newIdle.Equal(got.IdleExpiresAt))
	require.Equal(t, ttlBefore, f.mini.TTL("sess:"+session.ID))
}

func TestUpdateIdleExpiryMissingSession(t *testing.T) {
	f := setupRepoFixture(t)

	err := f.repo.UpdateIdleExpiry(context.Background(), "no-such-session", time.Now())
	require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}

func TestDeleteRemovesSessionAndIndexEntry(t *testing.T) {
	f := setupRepoFixture(t)
	userID := uuid.New()
	session := newSession(userID)
	require.NoError(t, f.repo.Insert(context.Background(), session))

	require.NoError(t, f.repo.Delete(context.Background(), session.ID))

	_, err := f.repo.Get(context.Background(), session.ID)
	require.ErrorIs(t, err, apperrors.ErrSessionNotFound)

	members, _ := f.mini.SMembers("sess:user:" + userID.String())
	require.Empty(t, members)
}

func TestDeleteIdempotent(t *testing.T) {
	f := setupRepoFixture(t)
	session := newSession(uuid.New())
	require.NoError(t, f.repo.Insert(context.Background(), session))

	require.NoError(t, f.repo.Delete(context.Background(), session.ID))
	require.NoError(t, f.repo.Delete(context.Background(), session.ID))
	require.NoError(t, f.repo.Delete(context.Background(), "never-existed"))
}

func TestDeleteByUserIDRemovesOnlyUsersSessions(t *testing.T) {
	f := setupRepoFixture(t)
	userID := uuid.New()
	otherID := uuid.New()

	first := newSession(userID)
	second := newSession(userID)
	other := newSession(otherID)
	for _, s := range []*sessions.Session{first, second, other} {
		require.NoError(t, f.repo.Insert(context.Background(), s))
	}

	require.NoError(t, f.repo.DeleteByUserID(context.Background(), userID))

	_, err := f.repo.Get(context.Background(), first.ID)
	require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	_, err = f.repo.Get(context.Background(), second.ID)
	require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
	require.False(t, f.mini.Exists("sess:user:"+userID.String()))

	got, err := f.repo.Get(context.Background(), other.ID)
	require.NoError(t, err)
	require.Equal(t, otherID, got.UserID)
}

func TestExpiredKeyBehavesAsMissing(t *testing.T) {
	f := setupRepoFixture(t)
	session := newSession(uuid.New())
	require.NoError(t, f.repo.Insert(context.Background(), session))

	f.mini.FastForward(31 * 24 * time.Hour)

	_, err := f.repo.Get(context.Background(), session.ID)
	require.ErrorIs(t, err, apperrors.ErrSessionNotFound)
}
