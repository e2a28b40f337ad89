package users

import (
	"context"

	"github.com/google/uuid"
)

type Repo interface {
	Upsert(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, offset, limit int) ([]*User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
