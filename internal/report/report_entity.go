package report

import (
	"encoding/json"
	"time"
)

type SystemReport struct {
	ID          int64           `gorm:"column:report_id;primaryKey;autoIncrement"`
	ReportType  string          `gorm:"column:report_type;type:varchar(100);not null;index"`
	GeneratedBy int64           `gorm:"column:generated_by;not null;index"`
	Content     json.RawMessage `gorm:"column:content;type:jsonb;not null;default:'{}'"`
	CreatedAt   time.Time       `gorm:"column:created_at"`

	Generator *UserRef `gorm:"foreignKey:GeneratedBy;references:ID"`
}

func (SystemReport) TableName() string {
	return "system_reports"
}

type UserRef struct {
	ID       int64  `gorm:"column:user_id;primaryKey"`
	FullName string `gorm:"column:full_name;->;-:migration"`
}

func (UserRef) TableName() string {
	return "users"
}
