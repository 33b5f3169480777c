package chatbot

import (
	"context"

	"github.com/hxben0103/ojt-ai-system/internal/shared/scope"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=chatbot_repo.go -destination=mock/chatbot_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, l *Log) error
	FindRecent(ctx context.Context, userID *int64, limit int) ([]Log, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, l *Log) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(l).Error
}

func (r *repository) FindRecent(ctx context.Context, userID *int64, limit int) ([]Log, error) {
	var rows []Log
	err := r.db.WithContext(ctx).
		Preload("User").
		Scopes(scope.EqPtr("user_id", userID)).
		Order("timestamp DESC, chat_id DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
