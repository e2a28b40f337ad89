package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/quillbase/go-blog-server/internal/errors"
)

// InMemoryRepo is an in-memory implementation of Repo. It is used for tests
// and single-process deployments that do not need sessions to survive a
// restart.
type InMemoryRepo struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

var _ Repo = (*InMemoryRepo)(nil)

// NewInMemoryRepo creates a new in-memory session repository
func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		sessions: make(map[string]Session),
	}
}

func (r *InMemoryRepo) Insert(ctx context.Context, session *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Store a copy to avoid external modifications
	r.sessions[session.ID] = *session
	return nil
}

func (r *InMemoryRepo) Get(ctx context.Context, sessionID string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[sessionID]
	if !ok {
		return nil, errors.ErrSessionNotFound
	}
	return &session, nil
}

func (r *InMemoryRepo) UpdateIdleExpiry(ctx context.Context, sessionID string, idleExpiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[sessionID]
	if !ok {
		return errors.ErrSessionNotFound
	}

	session.IdleExpiresAt = idleExpiresAt
	r.sessions[sessionID] = session
	return nil
}

func (r *InMemoryRepo) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sessionID)
	return nil
}

func (r *InMemoryRepo) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, session := range r.sessions {
		if session.UserID == userID {
			delete(r.sessions, id)
		}
	}
	return nil
}
