package user

import (
	"context"
	"strings"

	"github.com/hxben0103/ojt-ai-system/internal/shared/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAll(ctx context.Context, filter ListFilter) ([]User, error)
	FindPending(ctx context.Context, roles []string) ([]User, error)
	UpdateStatus(ctx context.Context, id int64, from, to string) (bool, error)
	UpdatePassword(ctx context.Context, id int64, hash string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, "user_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		First(&u, "LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Scopes(
			scope.Eq("role", filter.Role),
			scope.Eq("status", filter.Status),
		).
		Order("date_created DESC").
		Find(&users).Error
	return users, err
}

func (r *repository) FindPending(ctx context.Context, roles []string) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusPending).
		Where("role IN ?", roles).
		Order("date_created DESC").
		Find(&users).Error
	return users, err
}

// UpdateStatus moves the user from one status to another. A false result
// means the user was not in the expected status anymore.
func (r *repository) UpdateStatus(ctx context.Context, id int64, from, to string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&User{}).
		Where("user_id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return r.db.WithContext(ctx).
		Model(&User{}).
		Where("user_id = ?", id).
		Update("password_hash", hash).Error
}
