package report

import (
	"context"

	"github.com/hxben0103/ojt-ai-system/internal/shared/scope"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=report_repo.go -destination=mock/report_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, r *SystemReport) error
	FindAll(ctx context.Context, filter ListFilter) ([]SystemReport, error)
	FindByID(ctx context.Context, id int64) (*SystemReport, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rep *SystemReport) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(rep).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]SystemReport, error) {
	var rows []SystemReport
	err := r.db.WithContext(ctx).
		Preload("Generator").
		Scopes(
			scope.Eq("report_type", filter.ReportType),
			scope.EqPtr("generated_by", filter.GeneratedBy),
		).
		Order("created_at DESC, report_id DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (*SystemReport, error) {
	var rep SystemReport
	err := r.db.WithContext(ctx).
		Preload("Generator").
		First(&rep, "report_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &rep, nil
}
