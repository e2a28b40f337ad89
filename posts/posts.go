// Package posts is the blog content the authorization pipeline gates.
package posts

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Post is a blog post. Private posts are visible only to their owner.
type Post struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OwnerID   uuid.UUID `json:"owner_id" gorm:"type:uuid;index;not null"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Body      string    `json:"body" gorm:"type:text;not null"`
	IsPrivate bool      `json:"is_private" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
}

type Repo interface {
	// ListPublic returns every public post.
	ListPublic(ctx context.Context) ([]*Post, error)

	// ListVisibleTo returns public posts plus the viewer's private ones.
	ListVisibleTo(ctx context.Context, viewerID uuid.UUID) ([]*Post, error)

	Create(ctx context.Context, post *Post) error

	// Update modifies a post only when ownerID matches; returns
	// errors.ErrPostNotFound otherwise.
	Update(ctx context.Context, post *Post, ownerID uuid.UUID) error

	// Delete removes a post only when ownerID matches; returns
	// errors.ErrPostNotFound otherwise.
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}
