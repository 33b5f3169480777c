package errorlog

import "time"

type Entry struct {
	ID           int64     `gorm:"column:error_id;primaryKey;autoIncrement"`
	Route        string    `gorm:"column:route;type:varchar(255);not null"`
	Method       string    `gorm:"column:method;type:varchar(10);not null"`
	StatusCode   int       `gorm:"column:status_code;not null;index"`
	ErrorMessage string    `gorm:"column:error_message;type:text"`
	UserID       *int64    `gorm:"column:user_id"`
	RequestID    string    `gorm:"column:request_id;type:varchar(64)"`
	CreatedAt    time.Time `gorm:"column:created_at;index"`
}

func (Entry) TableName() string {
	return "api_error_logs"
}

type EntryResponse struct {
	ID           int64  `json:"error_id"`
	Route        string `json:"route"`
	Method       string `json:"method"`
	StatusCode   int    `json:"status_code"`
	ErrorMessage string `json:"error_message"`
	UserID       *int64 `json:"user_id"`
	RequestID    string `json:"request_id,omitempty"`
	CreatedAt    string `json:"created_at"`
}
