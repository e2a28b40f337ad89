package roles

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// InMemoryRepo is an in-memory implementation of Repo
type InMemoryRepo struct {
	mu          sync.RWMutex
	roles       map[string]Role
	assignments map[uuid.UUID]map[string]struct{}
}

var _ Repo = (*InMemoryRepo)(nil)

// NewInMemoryRepo creates a new in-memory role repository
func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		roles:       make(map[string]Role),
		assignments: make(map[uuid.UUID]map[string]struct{}),
	}
}

func (r *InMemoryRepo) RoleNamesForUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	assigned, ok := r.assignments[userID]
	if !ok {
		return []string{}, nil
	}
	names := make([]string, 0, len(assigned))
	for name := range assigned {
		names = append(names, name)
	}
	return names, nil
}

func (r *InMemoryRepo) EnsureRole(ctx context.Context, role Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.roles[role.Name]; !exists {
		r.roles[role.Name] = role
	}
	return nil
}

func (r *InMemoryRepo) Assign(ctx context.Context, userID uuid.UUID, roleName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.assignments[userID]; !ok {
		r.assignments[userID] = make(map[string]struct{})
	}
	r.assignments[userID][roleName] = struct{}{}
	return nil
}

func (r *InMemoryRepo) Unassign(ctx context.Context, userID uuid.UUID, roleName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if assigned, ok := r.assignments[userID]; ok {
		delete(assigned, roleName)
		if len(assigned) == 0 {
			delete(r.assignments, userID)
		}
	}
	return nil
}
