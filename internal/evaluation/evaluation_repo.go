package evaluation

import (
	"context"
	"database/sql"

	"github.com/hxben0103/ojt-ai-system/internal/domain"
	"github.com/hxben0103/ojt-ai-system/internal/shared/scope"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=evaluation_repo.go -destination=mock/evaluation_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Evaluation) error
	FindAll(ctx context.Context, filter ListFilter) ([]Evaluation, error)
	FindByID(ctx context.Context, id int64) (*Evaluation, error)
	Update(ctx context.Context, id int64, changes map[string]any) (bool, error)
	StatsByStudent(ctx context.Context, studentID int64) (Stats, error)
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

func (r *repository) Create(ctx context.Context, e *Evaluation) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(e).Error
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Evaluation, error) {
	var rows []Evaluation
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Supervisor").
		Scopes(
			scope.EqPtr("student_id", filter.StudentID),
			scope.EqPtr("supervisor_id", filter.SupervisorID),
		).
		Order("date_evaluated DESC, eval_id DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Evaluation, error) {
	var e Evaluation
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Supervisor").
		First(&e, "eval_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) Update(ctx context.Context, id int64, changes map[string]any) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&Evaluation{}).
		Where("eval_id = ?", id).
		Updates(changes)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// StatsByStudent splits the averages by the evaluator's role.
func (r *repository) StatsByStudent(ctx context.Context, studentID int64) (Stats, error) {
	var s Stats
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) AS eval_count,
		       COALESCE(AVG(e.total_score), 0) AS overall_avg,
		       AVG(e.total_score) FILTER (WHERE u.role = ?) AS coordinator_avg,
		       AVG(e.total_score) FILTER (WHERE u.role = ?) AS supervisor_avg
		FROM evaluations e
		JOIN users u ON u.user_id = e.supervisor_id
		WHERE e.student_id = ?
	`, domain.RoleCoordinator, domain.RoleSupervisor, studentID).Scan(&s).Error
	return s, err
}
