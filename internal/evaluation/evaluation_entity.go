package evaluation

import (
	"encoding/json"
	"time"
)

type Evaluation struct {
	ID            int64           `gorm:"column:eval_id;primaryKey;autoIncrement"`
	StudentID     int64           `gorm:"column:student_id;not null;index"`
	SupervisorID  int64           `gorm:"column:supervisor_id;not null;index"`
	Criteria      json.RawMessage `gorm:"column:criteria;type:jsonb;not null;default:'{}'"`
	TotalScore    float64         `gorm:"column:total_score;type:numeric(5,2);not null"`
	Feedback      *string         `gorm:"column:feedback;type:text"`
	DateEvaluated time.Time       `gorm:"column:date_evaluated;autoCreateTime"`

	Student    *UserRef `gorm:"foreignKey:StudentID;references:ID"`
	Supervisor *UserRef `gorm:"foreignKey:SupervisorID;references:ID"`
}

func (Evaluation) TableName() string {
	return "evaluations"
}

type UserRef struct {
	ID       int64  `gorm:"column:user_id;primaryKey"`
	FullName string `gorm:"column:full_name;->;-:migration"`
	Role     string `gorm:"column:role;->;-:migration"`
}

func (UserRef) TableName() string {
	return "users"
}

// Stats aggregates a student's scores. The per-role averages are nil when
// no evaluator of that role has scored the student.
type Stats struct {
	Count          int64    `gorm:"column:eval_count"`
	Average        float64  `gorm:"column:overall_avg"`
	CoordinatorAvg *float64 `gorm:"column:coordinator_avg"`
	SupervisorAvg  *float64 `gorm:"column:supervisor_avg"`
}
