package user

import "time"

const (
	StatusPending  = "Pending"
	StatusActive   = "Active"
	StatusRejected = "Rejected"
)

var Statuses = []string{StatusPending, StatusActive, StatusRejected}

type User struct {
	ID            int64     `gorm:"column:user_id;primaryKey;autoIncrement"`
	FullName      string    `gorm:"column:full_name;type:varchar(255);not null"`
	Email         string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex:uq_users_email"`
	PasswordHash  string    `gorm:"column:password_hash;type:text;not null"`
	Role          string    `gorm:"column:role;type:varchar(20);not null;default:Student;index"`
	Status        string    `gorm:"column:status;type:varchar(20);not null;default:Pending;index"`
	StudentNumber *string   `gorm:"column:student_number;type:varchar(50)"`
	Course        *string   `gorm:"column:course;type:varchar(255)"`
	Age           *int      `gorm:"column:age"`
	Gender        *string   `gorm:"column:gender;type:varchar(20)"`
	ContactNumber *string   `gorm:"column:contact_number;type:varchar(50)"`
	Address       *string   `gorm:"column:address;type:text"`
	RequiredHours *int      `gorm:"column:required_hours"`
	ProfilePhoto  *string   `gorm:"column:profile_photo;type:text"`
	DateCreated   time.Time `gorm:"column:date_created;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
