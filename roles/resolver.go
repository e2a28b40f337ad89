package roles

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Resolver maps a user ID to its current role set. It never returns an
// error: a failed lookup and a user with no roles both yield the empty set,
// so callers must not conflate "empty roles" with "unauthenticated". Lookup
// failures are logged so infrastructure trouble stays observable.
type Resolver struct {
	repo   Repo
	logger zerolog.Logger
}

// NewResolver creates a Resolver over the given role repository.
func NewResolver(repo Repo, logger zerolog.Logger) *Resolver {
	return &Resolver{repo: repo, logger: logger}
}

// RolesFor returns the set of role names assigned to the user.
func (r *Resolver) RolesFor(ctx context.Context, userID uuid.UUID) Set {
	names, err := r.repo.RoleNamesForUser(ctx, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to fetch user roles")
		return Set{}
	}
	return NewSet(names...)
}
