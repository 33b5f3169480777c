package errorlog

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=errorlog_repo.go -destination=mock/errorlog_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, e *Entry) error
	FindRecent(ctx context.Context, limit int) ([]Entry, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, e *Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindRecent(ctx context.Context, limit int) ([]Entry, error) {
	var rows []Entry
	err := r.db.WithContext(ctx).Order("created_at DESC, error_id DESC").Limit(limit).Find(&rows).Error
	return rows, err
}
