package attendance

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

type Attendance struct {
	ID           int64       `gorm:"column:attendance_id;primaryKey;autoIncrement"`
	StudentID    int64       `gorm:"column:student_id;not null;uniqueIndex:uq_attendance_student_date,priority:1"`
	Date         time.Time   `gorm:"column:date;type:date;not null;uniqueIndex:uq_attendance_student_date,priority:2"`
	TimeIn       *ClockTime  `gorm:"column:time_in;type:time"`
	TimeOut      *ClockTime  `gorm:"column:time_out;type:time"`
	MorningIn    *ClockTime  `gorm:"column:morning_in;type:time"`
	MorningOut   *ClockTime  `gorm:"column:morning_out;type:time"`
	AfternoonIn  *ClockTime  `gorm:"column:afternoon_in;type:time"`
	AfternoonOut *ClockTime  `gorm:"column:afternoon_out;type:time"`
	OvertimeIn   *ClockTime  `gorm:"column:overtime_in;type:time"`
	OvertimeOut  *ClockTime  `gorm:"column:overtime_out;type:time"`
	TotalHours   *float64    `gorm:"column:total_hours;type:numeric(6,2)"`
	Verified     bool        `gorm:"column:verified;not null;default:false"`
	CreatedAt    time.Time   `gorm:"column:created_at"`
	UpdatedAt    time.Time   `gorm:"column:updated_at"`
	Student      *StudentRef `gorm:"foreignKey:StudentID;references:ID"`
}

func (Attendance) TableName() string {
	return "attendance"
}

type StudentRef struct {
	ID       int64  `gorm:"column:user_id;primaryKey"`
	FullName string `gorm:"column:full_name;->;-:migration"`
}

func (StudentRef) TableName() string {
	return "users"
}

// ClockTime is a time of day stored in a postgres time column and kept in
// canonical "15:04:05" form.
type ClockTime string

var clockLayouts = []string{"15:04:05", "15:04", "15:04:05.999999"}

func ParseClockTime(raw string) (ClockTime, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return ClockTime(t.Format("15:04:05")), nil
		}
	}
	return "", fmt.Errorf("invalid time of day %q", raw)
}

// Seconds since midnight.
func (c ClockTime) Seconds() (int, error) {
	t, err := time.Parse("15:04:05", string(c))
	if err != nil {
		return 0, err
	}
	return t.Hour()*3600 + t.Minute()*60 + t.Second(), nil
}

func (c ClockTime) Value() (driver.Value, error) {
	return string(c), nil
}

func (c *ClockTime) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*c = ""
		return nil
	case time.Time:
		*c = ClockTime(v.Format("15:04:05"))
		return nil
	case []byte:
		return c.scanString(string(v))
	case string:
		return c.scanString(v)
	default:
		return fmt.Errorf("cannot scan %T into ClockTime", src)
	}
}

func (c *ClockTime) scanString(s string) error {
	parsed, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func clockPtr(c ClockTime) *ClockTime {
	return &c
}
