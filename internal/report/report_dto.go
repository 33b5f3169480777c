package report

import "encoding/json"

type CreateReportRequest struct {
	ReportType  string          `json:"report_type" binding:"required"`
	GeneratedBy int64           `json:"generated_by"`
	Content     json.RawMessage `json:"content"`
}

type ListFilter struct {
	ReportType  string
	GeneratedBy *int64
}

type ReportResponse struct {
	ID              int64           `json:"report_id"`
	ReportType      string          `json:"report_type"`
	GeneratedBy     int64           `json:"generated_by"`
	GeneratedByName string          `json:"generated_by_name,omitempty"`
	Content         json.RawMessage `json:"content"`
	CreatedAt       string          `json:"created_at"`
}

type RenderedPDF struct {
	Filename string
	Body     []byte
}
