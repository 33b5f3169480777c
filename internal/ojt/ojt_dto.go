package ojt

type CreateRecordRequest struct {
	StudentID      int64   `json:"student_id"`
	CoordinatorID  int64   `json:"coordinator_id"`
	SupervisorID   int64   `json:"supervisor_id"`
	CompanyName    string  `json:"company_name"`
	CompanyAddress *string `json:"company_address"`
	CompanyContact *string `json:"company_contact"`
	StartDate      string  `json:"start_date"`
	EndDate        *string `json:"end_date"`
	RequiredHours  *int    `json:"required_hours"`
}

// UpdateRecordRequest only touches the fields that are present.
type UpdateRecordRequest struct {
	CompanyName    *string `json:"company_name"`
	CompanyAddress *string `json:"company_address"`
	CompanyContact *string `json:"company_contact"`
	StartDate      *string `json:"start_date"`
	EndDate        *string `json:"end_date"`
	RequiredHours  *int    `json:"required_hours"`
	Status         *string `json:"status"`
}

type ListFilter struct {
	StudentID     *int64
	CoordinatorID *int64
	SupervisorID  *int64
	Status        string
}

type RecordResponse struct {
	ID              int64   `json:"record_id"`
	ReferenceNo     string  `json:"reference_no"`
	StudentID       int64   `json:"student_id"`
	StudentName     string  `json:"student_name,omitempty"`
	CoordinatorID   int64   `json:"coordinator_id"`
	CoordinatorName string  `json:"coordinator_name,omitempty"`
	SupervisorID    int64   `json:"supervisor_id"`
	SupervisorName  string  `json:"supervisor_name,omitempty"`
	CompanyName     string  `json:"company_name"`
	CompanyAddress  *string `json:"company_address"`
	CompanyContact  *string `json:"company_contact"`
	StartDate       string  `json:"start_date"`
	EndDate         *string `json:"end_date"`
	RequiredHours   int     `json:"required_hours"`
	Status          string  `json:"status"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}
