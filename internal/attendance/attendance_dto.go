package attendance

import "time"

type TimeInRequest struct {
	StudentID *int64  `json:"student_id"`
	Date      *string `json:"date"`
	Segment   *string `json:"segment"`
	TimeIn    *string `json:"time_in"`
}

type TimeOutRequest struct {
	AttendanceID *int64  `json:"attendance_id"`
	StudentID    *int64  `json:"student_id"`
	Date         *string `json:"date"`
	Segment      *string `json:"segment"`
	TimeOut      *string `json:"time_out"`

	// OwnerID restricts the update to rows of this student.
	OwnerID *int64 `json:"-"`
}

type ListFilter struct {
	StudentID *int64
	Date      *time.Time
}

type AttendanceResponse struct {
	ID           int64      `json:"attendance_id"`
	StudentID    int64      `json:"student_id"`
	FullName     string     `json:"full_name,omitempty"`
	Date         string     `json:"date"`
	TimeIn       *ClockTime `json:"time_in"`
	TimeOut      *ClockTime `json:"time_out"`
	MorningIn    *ClockTime `json:"morning_in"`
	MorningOut   *ClockTime `json:"morning_out"`
	AfternoonIn  *ClockTime `json:"afternoon_in"`
	AfternoonOut *ClockTime `json:"afternoon_out"`
	OvertimeIn   *ClockTime `json:"overtime_in"`
	OvertimeOut  *ClockTime `json:"overtime_out"`
	TotalHours   *float64   `json:"total_hours"`
	Verified     bool       `json:"verified"`
	UpdatedAt    string     `json:"updated_at"`
}

type SummaryResponse struct {
	StudentID      int64   `json:"student_id"`
	FullName       string  `json:"full_name"`
	TotalDays      int     `json:"total_days"`
	TotalHours     float64 `json:"total_hours"`
	AvgHoursPerDay float64 `json:"avg_hours_per_day"`
}

// FieldError is one store-level rejection reason attached to a
// validation error.
type FieldError struct {
	Field      string `json:"field"`
	Constraint string `json:"constraint,omitempty"`
	Message    string `json:"message"`
}
