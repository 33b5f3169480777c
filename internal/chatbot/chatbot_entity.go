package chatbot

import "time"

const (
	DefaultModel = "rule-based"
	// RecentLimit caps every log listing.
	RecentLimit = 100
)

type Log struct {
	ID        int64     `gorm:"column:chat_id;primaryKey;autoIncrement"`
	UserID    int64     `gorm:"column:user_id;not null;index"`
	Query     string    `gorm:"column:query;type:text;not null"`
	Response  string    `gorm:"column:response;type:text;not null"`
	ModelUsed string    `gorm:"column:model_used;type:varchar(100);not null;default:rule-based"`
	Timestamp time.Time `gorm:"column:timestamp;not null;index"`

	User *UserRef `gorm:"foreignKey:UserID;references:ID"`
}

func (Log) TableName() string {
	return "chatbot_logs"
}

type UserRef struct {
	ID       int64  `gorm:"column:user_id;primaryKey"`
	FullName string `gorm:"column:full_name;->;-:migration"`
	Role     string `gorm:"column:role;->;-:migration"`
}

func (UserRef) TableName() string {
	return "users"
}
