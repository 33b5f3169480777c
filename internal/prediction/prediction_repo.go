package prediction

import (
	"context"

	"github.com/hxben0103/ojt-ai-system/internal/shared/scope"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=prediction_repo.go -destination=mock/prediction_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, in *Insight) error
	CreateBatch(ctx context.Context, rows []Insight) error
	FindAll(ctx context.Context, filter ListFilter) ([]Insight, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, in *Insight) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(in).Error
}

func (r *repository) CreateBatch(ctx context.Context, rows []Insight) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).CreateInBatches(rows, 100).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Insight, error) {
	var rows []Insight
	err := r.db.WithContext(ctx).
		Preload("Student").
		Scopes(
			scope.EqPtr("student_id", filter.StudentID),
			scope.Eq("insight_type", filter.InsightType),
		).
		Order("created_at DESC, insight_id DESC").
		Find(&rows).Error
	return rows, err
}
