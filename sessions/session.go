package sessions

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session is a server-side login session. The ID doubles as the bearer token
// presented by the client and the primary key in the backing store.
//
// ExpiresAt is the absolute deadline: once passed, the session is dead no
// matter how active the client was. IdleExpiresAt is a sliding deadline that
// is pushed forward on every successful validation, and never past ExpiresAt.
type Session struct {
	ID            string    `gorm:"primaryKey;size:255"`
	UserID        uuid.UUID `gorm:"type:uuid;index;not null"`
	ExpiresAt     time.Time `gorm:"not null"`
	IdleExpiresAt time.Time `gorm:"not null"`
}

// Repo defines the storage capability a Manager needs. Implementations must
// provide atomic single-row reads and writes; no transactional envelope is
// assumed across a Get followed by an UpdateIdleExpiry.
type Repo interface {
	// Insert stores a new session keyed by its ID.
	Insert(ctx context.Context, session *Session) error

	// Get retrieves a session by ID. Returns errors.ErrSessionNotFound when
	// no row exists.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// UpdateIdleExpiry slides the idle deadline of an existing session.
	UpdateIdleExpiry(ctx context.Context, sessionID string, idleExpiresAt time.Time) error

	// Delete removes a session. Deleting an absent session is not an error.
	Delete(ctx context.Context, sessionID string) error

	// DeleteByUserID removes every session owned by the user. Used for
	// "sign out everywhere" and when the owning user is deleted.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
