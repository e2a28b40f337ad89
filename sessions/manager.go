package sessions

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	apperrors "github.com/quillbase/go-blog-server/internal/errors"
)

// Session lifetime defaults, matching the cookie the login flow issues.
const (
	DefaultAbsoluteTTL = 30 * 24 * time.Hour
	DefaultIdleTTL     = 7 * 24 * time.Hour
	DefaultTokenLength = 32
)

// Manager owns the session lifecycle: issuing tokens, validating them under
// the dual expiry policy, and invalidating them. All state lives in the
// injected Repo; a Manager itself is stateless and safe for concurrent use.
type Manager struct {
	repo        Repo
	absoluteTTL time.Duration
	idleTTL     time.Duration
	tokenLength int
	nowTime     func() time.Time // nowTime function (injectable for testing)
}

// ManagerOption defines a function type to modify the Manager instance.
type ManagerOption func(*Manager)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowTime = nowFunc
	}
}

// WithTTLs overrides the absolute and idle session lifetimes.
func WithTTLs(absolute, idle time.Duration) ManagerOption {
	return func(m *Manager) {
		m.absoluteTTL = absolute
		m.idleTTL = idle
	}
}

// WithTokenLength overrides the number of random bytes per token.
func WithTokenLength(n int) ManagerOption {
	return func(m *Manager) {
		m.tokenLength = n
	}
}

// NewManager initializes a new Manager with the required session repository.
// Optional configuration can be provided via options (e.g., WithNowTime for
// testing).
func NewManager(repo Repo, options ...ManagerOption) (*Manager, error) {
	if repo == nil {
		return nil, errors.New("[NewManager] session repo is required")
	}

	m := &Manager{
		repo:        repo,
		absoluteTTL: DefaultAbsoluteTTL,
		idleTTL:     DefaultIdleTTL,
		tokenLength: DefaultTokenLength,
		nowTime:     time.Now,
	}

	for _, opt := range options {
		opt(m)
	}

	return m, nil
}

// GenerateToken draws byteLength bytes from crypto/rand and encodes them as
// unpadded URL-safe base64. The default 32 bytes encode to 43 characters.
func GenerateToken(byteLength int) (string, error) {
	b := make([]byte, byteLength)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Wrap(err, "[GenerateToken] reading random bytes")
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Create issues a new session for the user and persists it. Multiple
// concurrent sessions per user are permitted; nothing here enforces a
// single-session policy.
func (m *Manager) Create(ctx context.Context, userID uuid.UUID) (*Session, error) {
	token, err := GenerateToken(m.tokenLength)
	if err != nil {
		return nil, err
	}

	now := m.nowTime()
	session := &Session{
		ID:            token,
		UserID:        userID,
		ExpiresAt:     now.Add(m.absoluteTTL),
		IdleExpiresAt: now.Add(m.idleTTL),
	}

	if err := m.repo.Insert(ctx, session); err != nil {
		return nil, errors.Wrap(err, "[Create] inserting session")
	}
	return session, nil
}

// Validate looks up the presented token, enforces both expiry deadlines and
// slides the idle deadline forward on success. Expired sessions are eagerly
// deleted. Callers should treat ErrSessionNotFound and ErrSessionExpired the
// same way: no valid session.
func (m *Manager) Validate(ctx context.Context, token string) (*Session, error) {
	session, err := m.repo.Get(ctx, token)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrSessionNotFound) {
			return nil, apperrors.ErrSessionNotFound
		}
		return nil, errors.Wrap(err, "[Validate] getting session")
	}

	// Defensive invariant check: the store is keyed by exact token, so the
	// stored ID must equal what the caller presented. Compared in constant
	// time so a mismatching store never leaks prefix information.
	if subtle.ConstantTimeCompare([]byte(session.ID), []byte(token)) != 1 {
		return nil, apperrors.ErrSessionNotFound
	}

	now := m.nowTime()
	if !now.Before(session.ExpiresAt) {
		if err := m.Invalidate(ctx, token); err != nil {
			return nil, err
		}
		return nil, apperrors.ErrSessionExpired
	}
	if !now.Before(session.IdleExpiresAt) {
		if err := m.Invalidate(ctx, token); err != nil {
			return nil, err
		}
		return nil, apperrors.ErrSessionExpired
	}

	// Slide the idle deadline, clamped so it never passes the absolute one.
	newIdle := now.Add(m.idleTTL)
	if newIdle.After(session.ExpiresAt) {
		newIdle = session.ExpiresAt
	}
	if err := m.repo.UpdateIdleExpiry(ctx, token, newIdle); err != nil {
		return nil, errors.Wrap(err, "[Validate] refreshing idle expiry")
	}

	refreshed := *session
	refreshed.IdleExpiresAt = newIdle
	return &refreshed, nil
}

// Invalidate deletes the session. It is idempotent: invalidating an unknown
// token succeeds.
func (m *Manager) Invalidate(ctx context.Context, token string) error {
	if err := m.repo.Delete(ctx, token); err != nil {
		return errors.Wrap(err, "[Invalidate] deleting session")
	}
	return nil
}

// InvalidateAll deletes every session owned by the user ("sign out
// everywhere"). Also called when the owning user is deleted.
func (m *Manager) InvalidateAll(ctx context.Context, userID uuid.UUID) error {
	if err := m.repo.DeleteByUserID(ctx, userID); err != nil {
		return errors.Wrap(err, "[InvalidateAll] deleting user sessions")
	}
	return nil
}
