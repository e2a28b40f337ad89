package gormrepo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quillbase/go-blog-server/internal/errors"
	"github.com/quillbase/go-blog-server/posts"
)

type Repo struct {
	db *gorm.DB
}

var _ posts.Repo = (*Repo)(nil)

func New(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) ListPublic(ctx context.Context) ([]*posts.Post, error) {
	var list []*posts.Post
	err := r.db.WithContext(ctx).
		Where("is_private = ?", false).
		Order("created_at").
		Find(&list).Error
	return list, err
}

func (r *Repo) ListVisibleTo(ctx context.Context, viewerID uuid.UUID) ([]*posts.Post, error) {
	var list []*posts.Post
	err := r.db.WithContext(ctx).
		Where("is_private = ? OR owner_id = ?", false, viewerID).
		Order("created_at").
		Find(&list).Error
	return list, err
}

func (r *Repo) Create(ctx context.Context, post *posts.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *Repo) Update(ctx context.Context, post *posts.Post, ownerID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&posts.Post{}).
		Where("id = ? AND owner_id = ?", post.ID, ownerID).
		Updates(map[string]interface{}{
			"title":      post.Title,
			"body":       post.Body,
			"is_private": post.IsPrivate,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.ErrPostNotFound
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&posts.Post{}, "id = ? AND owner_id = ?", id, ownerID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.ErrPostNotFound
	}
	return nil
}
