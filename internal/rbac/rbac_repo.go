package rbac

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetRolePermissions(ctx context.Context) ([]RolePermissionRow, error)
	AddRolePermission(ctx context.Context, row *RolePermissionRow) error
	DeleteRolePermission(ctx context.Context, role, resource, action string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// RolePermissionRow is an extra grant stored on top of the built-in policy.
type RolePermissionRow struct {
	ID       int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Role     string `gorm:"column:role;type:varchar(50);not null;uniqueIndex:uq_role_permission"`
	Resource string `gorm:"column:resource;type:varchar(50);not null;uniqueIndex:uq_role_permission"`
	Action   string `gorm:"column:action;type:varchar(50);not null;uniqueIndex:uq_role_permission"`
}

func (RolePermissionRow) TableName() string {
	return "role_permissions"
}

func (r *repository) GetRolePermissions(ctx context.Context) ([]RolePermissionRow, error) {
	var rows []RolePermissionRow
	err := r.db.WithContext(ctx).
		Order("role, resource, action").
		Find(&rows).Error
	return rows, err
}

func (r *repository) AddRolePermission(ctx context.Context, row *RolePermissionRow) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(row).Error
}

func (r *repository) DeleteRolePermission(ctx context.Context, role, resource, action string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("role = ? AND resource = ? AND action = ?", role, resource, action).
		Delete(&RolePermissionRow{})
	return res.RowsAffected > 0, res.Error
}
