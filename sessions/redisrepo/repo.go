// Package redisrepo provides a Redis-backed session repository. Sessions
// are stored as JSON blobs under a token key with a TTL at the absolute
// expiry, plus a per-user set index so delete-by-user stays a keyed
// operation.
package redisrepo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/quillbase/go-blog-server/internal/errors"
	"github.com/quillbase/go-blog-server/sessions"
)

const (
	sessionKeyPrefix = "sess:"
	userKeyPrefix    = "sess:user:"
)

type Repo struct {
	rdb *redis.Client
}

var _ sessions.Repo = (*Repo)(nil)

func New(rdb *redis.Client) *Repo {
	return &Repo{rdb: rdb}
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func userKey(userID uuid.UUID) string {
	return userKeyPrefix + userID.String()
}

func (r *Repo) Insert(ctx context.Context, session *sessions.Session) error {
	blob, err := json.Marshal(session)
	if err != nil {
		return err
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Second
	}

	pipe := r.rdb.TxPipeline()
	pipe.Set(ctx, sessionKey(session.ID), blob, ttl)
	pipe.SAdd(ctx, userKey(session.UserID), session.ID)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *Repo) Get(ctx context.Context, sessionID string) (*sessions.Session, error) {
	blob, err := r.rdb.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errors.ErrSessionNotFound
		}
		return nil, err
	}

	var session sessions.Session
	if err := json.Unmarshal(blob, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *Repo) UpdateIdleExpiry(ctx context.Context, sessionID string, idleExpiresAt time.Time) error {
	session, err := r.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	session.IdleExpiresAt = idleExpiresAt
	blob, err := json.Marshal(session)
	if err != nil {
		return err
	}

	// KEEPTTL preserves the absolute-expiry TTL set on Insert.
	return r.rdb.Set(ctx, sessionKey(sessionID), blob, redis.KeepTTL).Err()
}

func (r *Repo) Delete(ctx context.Context, sessionID string) error {
	session, err := r.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, errors.ErrSessionNotFound) {
			return nil
		}
		return err
	}

	pipe := r.rdb.TxPipeline()
	pipe.Del(ctx, sessionKey(sessionID))
	pipe.SRem(ctx, userKey(session.UserID), sessionID)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *Repo) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	ids, err := r.rdb.SMembers(ctx, userKey(userID)).Result()
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, sessionKey(id))
	}
	keys = append(keys, userKey(userID))

	return r.rdb.Del(ctx, keys...).Err()
}
