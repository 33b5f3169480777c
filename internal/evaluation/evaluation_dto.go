package evaluation

import "encoding/json"

type CreateEvaluationRequest struct {
	StudentID    int64           `json:"student_id"`
	SupervisorID int64           `json:"supervisor_id"`
	Criteria     json.RawMessage `json:"criteria"`
	TotalScore   *float64        `json:"total_score" binding:"required"`
	Feedback     *string         `json:"feedback"`
}

type UpdateEvaluationRequest struct {
	Criteria   json.RawMessage `json:"criteria"`
	TotalScore *float64        `json:"total_score"`
	Feedback   *string         `json:"feedback"`
}

type ListFilter struct {
	StudentID    *int64
	SupervisorID *int64
}

type EvaluationResponse struct {
	ID             int64           `json:"eval_id"`
	StudentID      int64           `json:"student_id"`
	StudentName    string          `json:"student_name,omitempty"`
	SupervisorID   int64           `json:"supervisor_id"`
	SupervisorName string          `json:"supervisor_name,omitempty"`
	EvaluatorRole  string          `json:"evaluator_role,omitempty"`
	Criteria       json.RawMessage `json:"criteria"`
	TotalScore     float64         `json:"total_score"`
	Feedback       *string         `json:"feedback"`
	DateEvaluated  string          `json:"date_evaluated"`
}
