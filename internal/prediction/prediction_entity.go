package prediction

import (
	"encoding/json"
	"time"
)

const (
	InsightPerformance = "performance_prediction"
	InsightRisk        = "risk_assessment"
	InsightDailyRisk   = "daily_risk_prediction"

	ModelPerformance = "Performance Prediction Model"
	ModelRisk        = "Rule-based Risk Model"
	ModelDailyRisk   = "Daily Risk Prediction Ensemble"
)

type Insight struct {
	ID          int64           `gorm:"column:insight_id;primaryKey;autoIncrement"`
	StudentID   int64           `gorm:"column:student_id;not null;index"`
	ModelName   string          `gorm:"column:model_name;type:varchar(255);not null"`
	InsightType string          `gorm:"column:insight_type;type:varchar(100);not null;index"`
	Result      json.RawMessage `gorm:"column:result;type:jsonb;not null"`
	Confidence  *float64        `gorm:"column:confidence;type:numeric(6,4)"`
	InputData   json.RawMessage `gorm:"column:input_data;type:jsonb"`
	CreatedAt   time.Time       `gorm:"column:created_at"`

	Student *UserRef `gorm:"foreignKey:StudentID;references:ID"`
}

func (Insight) TableName() string {
	return "ai_insights"
}

type UserRef struct {
	ID       int64  `gorm:"column:user_id;primaryKey"`
	FullName string `gorm:"column:full_name;->;-:migration"`
}

func (UserRef) TableName() string {
	return "users"
}
