// Package gormrepo provides the GORM-backed session repository used by the
// default SQLite deployment.
package gormrepo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quillbase/go-blog-server/internal/errors"
	"github.com/quillbase/go-blog-server/sessions"
)

type Repo struct {
	db *gorm.DB
}

var _ sessions.Repo = (*Repo)(nil)

func New(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Insert(ctx context.Context, session *sessions.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *Repo) Get(ctx context.Context, sessionID string) (*sessions.Session, error) {
	var session sessions.Session
	err := r.db.WithContext(ctx).First(&session, "id = ?", sessionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *Repo) UpdateIdleExpiry(ctx context.Context, sessionID string, idleExpiresAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&sessions.Session{}).
		Where("id = ?", sessionID).
		Update("idle_expires_at", idleExpiresAt)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.ErrSessionNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, sessionID string) error {
	// Deleting an absent row affects zero rows, which is fine: Delete is
	// idempotent.
	return r.db.WithContext(ctx).Delete(&sessions.Session{}, "id = ?", sessionID).Error
}

func (r *Repo) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&sessions.Session{}, "user_id = ?", userID).Error
}
