package gormrepo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/quillbase/go-blog-server/roles"
)

type Repo struct {
	db *gorm.DB
}

var _ roles.Repo = (*Repo)(nil)

func New(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) RoleNamesForUser(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&roles.UserRole{}).
		Where("user_id = ?", userID).
		Pluck("role_name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (r *Repo) EnsureRole(ctx context.Context, role roles.Role) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&role).Error
}

func (r *Repo) Assign(ctx context.Context, userID uuid.UUID, roleName string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&roles.UserRole{UserID: userID, RoleName: roleName}).Error
}

func (r *Repo) Unassign(ctx context.Context, userID uuid.UUID, roleName string) error {
	return r.db.WithContext(ctx).
		Delete(&roles.UserRole{}, "user_id = ? AND role_name = ?", userID, roleName).Error
}
