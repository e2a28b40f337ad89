package posts

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/quillbase/go-blog-server/internal/errors"
)

// InMemoryRepo is an in-memory implementation of Repo
type InMemoryRepo struct {
	mu    sync.RWMutex
	posts map[uuid.UUID]Post
}

var _ Repo = (*InMemoryRepo)(nil)

// NewInMemoryRepo creates a new in-memory post repository
func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		posts: make(map[uuid.UUID]Post),
	}
}

func (r *InMemoryRepo) ListPublic(ctx context.Context) ([]*Post, error) {
	return r.list(func(p Post) bool { return !p.IsPrivate }), nil
}

func (r *InMemoryRepo) ListVisibleTo(ctx context.Context, viewerID uuid.UUID) ([]*Post, error) {
	return r.list(func(p Post) bool { return !p.IsPrivate || p.OwnerID == viewerID }), nil
}

func (r *InMemoryRepo) list(visible func(Post) bool) []*Post {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*Post, 0, len(r.posts))
	for _, post := range r.posts {
		if visible(post) {
			p := post
			matched = append(matched, &p)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.Before(matched[j].CreatedAt) })
	return matched
}

func (r *InMemoryRepo) Create(ctx context.Context, post *Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.posts[post.ID] = *post
	return nil
}

func (r *InMemoryRepo) Update(ctx context.Context, post *Post, ownerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.posts[post.ID]
	if !ok || existing.OwnerID != ownerID {
		return errors.ErrPostNotFound
	}

	post.OwnerID = existing.OwnerID
	post.CreatedAt = existing.CreatedAt
	r.posts[post.ID] = *post
	return nil
}

func (r *InMemoryRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.posts[id]
	if !ok || existing.OwnerID != ownerID {
		return errors.ErrPostNotFound
	}

	delete(r.posts, id)
	return nil
}
