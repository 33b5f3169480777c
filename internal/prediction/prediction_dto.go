package prediction

import (
	"encoding/json"

	"github.com/hxben0103/ojt-ai-system/internal/aiclient"
)

type CreateInsightRequest struct {
	StudentID   int64           `json:"student_id"`
	ModelName   string          `json:"model_name"`
	InsightType string          `json:"insight_type"`
	Result      json.RawMessage `json:"result"`
	Confidence  *float64        `json:"confidence"`
}

type GenerateRequest struct {
	StudentID int64 `json:"student_id"`
}

type InsightResponse struct {
	ID          int64           `json:"insight_id"`
	StudentID   int64           `json:"student_id"`
	StudentName string          `json:"student_name,omitempty"`
	ModelName   string          `json:"model_name"`
	InsightType string          `json:"insight_type"`
	Result      json.RawMessage `json:"result"`
	Confidence  *float64        `json:"confidence"`
	InputData   json.RawMessage `json:"input_data,omitempty"`
	CreatedAt   string          `json:"created_at"`
}

type RiskFactor struct {
	Factor string  `json:"factor"`
	Points float64 `json:"points"`
	Detail string  `json:"detail"`
}

type RiskAssessment struct {
	StudentID               int64        `json:"student_id"`
	StudentName             string       `json:"student_name,omitempty"`
	RecordID                int64        `json:"record_id"`
	RiskScore               float64      `json:"risk_score"`
	RiskLevel               string       `json:"risk_level"`
	Factors                 []RiskFactor `json:"contributing_factors"`
	CompletedHours          float64      `json:"completed_hours"`
	RequiredHours           int          `json:"required_hours"`
	ExpectedHours           float64      `json:"expected_hours"`
	CompletionRate          float64      `json:"completion_rate"`
	AverageScore            *float64     `json:"average_score"`
	DaysSinceLastAttendance int          `json:"days_since_last_attendance"`
}

type PerformancePrediction struct {
	StudentID         int64    `json:"student_id"`
	RecordID          int64    `json:"record_id"`
	PredictedScore    float64  `json:"predicted_score"`
	PredictedGrade    string   `json:"predicted_grade"`
	CompletionRate    float64  `json:"completion_rate"`
	AverageEvaluation *float64 `json:"average_evaluation"`
	EvaluationCount   int64    `json:"evaluation_count"`
	DaysPresent       int      `json:"days_present"`
	Confidence        float64  `json:"confidence"`
}

type DailyPrediction struct {
	StudentID    int64             `json:"student_id"`
	Snapshot     aiclient.Snapshot `json:"snapshot"`
	AIPrediction json.RawMessage   `json:"ai_prediction"`
	GeneratedAt  string            `json:"generated_at"`
}

type ListFilter struct {
	StudentID   *int64
	InsightType string
}

type BatchResult struct {
	Processed int              `json:"processed"`
	High      int              `json:"high"`
	Medium    int              `json:"medium"`
	Low       int              `json:"low"`
	Failed    []int64          `json:"failed_student_ids"`
	Results   []RiskAssessment `json:"results"`
}
