package ojt

import (
	"context"
	"database/sql"

	"github.com/hxben0103/ojt-ai-system/internal/shared/scope"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=ojt_repo.go -destination=mock/ojt_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *Record) error
	FindAll(ctx context.Context, filter ListFilter) ([]Record, error)
	FindByID(ctx context.Context, id int64) (*Record, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*Record, error)
	FindLatestByStudent(ctx context.Context, studentID int64) (*Record, error)
	HasOngoing(ctx context.Context, studentID int64) (bool, error)
	Update(ctx context.Context, r *Record) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	db := r.db.WithContext(context.Background())
	db.Statement.ConnPool = tx
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rec *Record) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(rec).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Record, error) {
	var rows []Record
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Coordinator").
		Preload("Supervisor").
		Scopes(
			scope.EqPtr("student_id", filter.StudentID),
			scope.EqPtr("coordinator_id", filter.CoordinatorID),
			scope.EqPtr("supervisor_id", filter.SupervisorID),
			scope.Eq("status", filter.Status),
		).
		Order("start_date DESC, record_id DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Record, error) {
	var rec Record
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Coordinator").
		Preload("Supervisor").
		First(&rec, "record_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) FindByIDForUpdate(ctx context.Context, id int64) (*Record, error) {
	var rec Record
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&rec, "record_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// FindLatestByStudent prefers the ongoing record, then the newest by start date.
func (r *repository) FindLatestByStudent(ctx context.Context, studentID int64) (*Record, error) {
	var rec Record
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("student_id = ?", studentID).
		Order("CASE WHEN status = '" + StatusOngoing + "' THEN 0 ELSE 1 END, start_date DESC").
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) HasOngoing(ctx context.Context, studentID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&Record{}).
		Where("student_id = ?", studentID).
		Where("status = ?", StatusOngoing).
		Count(&n).Error
	return n > 0, err
}

func (r *repository) Update(ctx context.Context, rec *Record) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(rec).Error
}

func (r *repository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&Record{}, "record_id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
