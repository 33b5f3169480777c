package events

import "time"

const AttendanceRecordedTopic = "ojt.attendance.recorded.v1"

const (
	EventAttendanceTimeIn  = "attendance_time_in"
	EventAttendanceTimeOut = "attendance_time_out"
)

type AttendanceRecordedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	AttendanceID int64     `json:"attendance_id"`
	StudentID    int64     `json:"student_id"`
	Date         string    `json:"date"`
	Segment      string    `json:"segment,omitempty"`
	Field        string    `json:"field"`
	OccurredAt   time.Time `json:"occurred_at"`
}
