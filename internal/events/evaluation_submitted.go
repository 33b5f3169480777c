package events

import "time"

const EvaluationSubmittedTopic = "ojt.evaluation.submitted.v1"

const EventEvaluationSubmitted = "evaluation_submitted"

type EvaluationSubmittedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	EvaluationID int64     `json:"evaluation_id"`
	StudentID    int64     `json:"student_id"`
	SupervisorID int64     `json:"supervisor_id"`
	TotalScore   float64   `json:"total_score"`
	OccurredAt   time.Time `json:"occurred_at"`
}
