package roles

import (
	"context"

	"github.com/google/uuid"
)

// Role is static reference data: a unique name plus a description.
type Role struct {
	Name        string `json:"name" gorm:"primaryKey;size:64"`
	Description string `json:"description" gorm:"type:text"`
}

// UserRole is the many-to-many join of users and roles. The authorization
// core only reads it; rows are written during registration and by admin
// tooling.
type UserRole struct {
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	RoleName string    `gorm:"primaryKey;size:64"`
}

// Set is an unordered, duplicate-free collection of role names.
type Set map[string]struct{}

// NewSet builds a Set from role names, discarding duplicates.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func (s Set) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// ContainsAny reports whether the set intersects the required names
// (logical OR across the required roles).
func (s Set) ContainsAny(names ...string) bool {
	for _, n := range names {
		if s.Contains(n) {
			return true
		}
	}
	return false
}

// Names returns the set's contents as a slice, in no particular order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	return names
}

type Repo interface {
	// RoleNamesForUser returns the names of every role assigned to the user
	// via the user_roles join.
	RoleNamesForUser(ctx context.Context, userID uuid.UUID) ([]string, error)

	// EnsureRole inserts the role if it does not already exist.
	EnsureRole(ctx context.Context, role Role) error

	// Assign adds a user/role pair to the join. Assigning an existing pair
	// is not an error.
	Assign(ctx context.Context, userID uuid.UUID, roleName string) error

	// Unassign removes a user/role pair from the join.
	Unassign(ctx context.Context, userID uuid.UUID, roleName string) error
}
