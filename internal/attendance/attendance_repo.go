package attendance

import (
	"context"
	"database/sql"
	"time"

	"github.com/hxben0103/ojt-ai-system/internal/shared/clock"
	"github.com/hxben0103/ojt-ai-system/internal/shared/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByStudentAndDate(ctx context.Context, studentID int64, date time.Time) (*Attendance, error)
	FindByID(ctx context.Context, id int64) (*Attendance, error)
	Create(ctx context.Context, a *Attendance) error
	UpdateFields(ctx context.Context, id int64, guard Field, changes map[string]any) (bool, error)
	FindAll(ctx context.Context, filter ListFilter) ([]Attendance, error)
	Verify(ctx context.Context, id int64, at time.Time) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx runs every statement of the returned repository on tx.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	db := r.db.WithContext(context.Background())
	db.Statement.ConnPool = tx
	return &repository{db: db}
}

func (r *repository) FindByStudentAndDate(ctx context.Context, studentID int64, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Where("date = ?", date.Format(clock.DateLayout)).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Preload("Student").
		First(&a, "attendance_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts whichever clock fields are set on a.
func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Omit("Student").Create(a).Error
}

// UpdateFields applies changes only while guard is still NULL. A false
// result means another writer set guard first.
func (r *repository) UpdateFields(ctx context.Context, id int64, guard Field, changes map[string]any) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Where("attendance_id = ?", id).
		Where(guard.Column() + " IS NULL").
		Updates(changes)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Attendance, error) {
	var rows []Attendance

	q := r.db.WithContext(ctx).
		Preload("Student").
		Scopes(scope.EqPtr("student_id", filter.StudentID))
	if filter.Date != nil {
		q = q.Where("date = ?", filter.Date.Format(clock.DateLayout))
	}

	err := q.Order("date DESC, time_in DESC NULLS LAST, attendance_id DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Verify(ctx context.Context, id int64, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Where("attendance_id = ?", id).
		Updates(map[string]any{"verified": true, "updated_at": at})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
