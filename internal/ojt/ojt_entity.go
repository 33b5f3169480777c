package ojt

import "time"

const (
	StatusOngoing   = "Ongoing"
	StatusCompleted = "Completed"
	StatusDropped   = "Dropped"
)

const DefaultRequiredHours = 300

var Statuses = []string{StatusOngoing, StatusCompleted, StatusDropped}

type Record struct {
	ID             int64      `gorm:"column:record_id;primaryKey;autoIncrement"`
	ReferenceNo    string     `gorm:"column:reference_no;type:varchar(20);not null;uniqueIndex:uq_ojt_reference_no"`
	StudentID      int64      `gorm:"column:student_id;not null;index;uniqueIndex:uq_ojt_ongoing_student,where:status = 'Ongoing'"`
	CoordinatorID  int64      `gorm:"column:coordinator_id;not null;index"`
	SupervisorID   int64      `gorm:"column:supervisor_id;not null;index"`
	CompanyName    string     `gorm:"column:company_name;type:varchar(255);not null"`
	CompanyAddress *string    `gorm:"column:company_address;type:text"`
	CompanyContact *string    `gorm:"column:company_contact;type:varchar(100)"`
	StartDate      time.Time  `gorm:"column:start_date;type:date;not null"`
	EndDate        *time.Time `gorm:"column:end_date;type:date"`
	RequiredHours  int        `gorm:"column:required_hours;not null;default:300"`
	Status         string     `gorm:"column:status;type:varchar(20);not null;default:Ongoing"`
	CreatedAt      time.Time  `gorm:"column:created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`

	Student     *UserRef `gorm:"foreignKey:StudentID;references:ID"`
	Coordinator *UserRef `gorm:"foreignKey:CoordinatorID;references:ID"`
	Supervisor  *UserRef `gorm:"foreignKey:SupervisorID;references:ID"`
}

func (Record) TableName() string {
	return "ojt_records"
}

type UserRef struct {
	ID       int64  `gorm:"column:user_id;primaryKey"`
	FullName string `gorm:"column:full_name;->;-:migration"`
}

func (UserRef) TableName() string {
	return "users"
}

// transitions lists the statuses a record may move to from each status.
var transitions = map[string][]string{
	StatusOngoing: {StatusCompleted, StatusDropped},
}

func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func IsValidStatus(status string) bool {
	for _, s := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}
