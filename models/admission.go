package models

import "time"

// Workflow status values stored in admissions.status.
const (
	StatusSubmitted          = "SUBMITTED"
	StatusHeadAccepted       = "HEAD_ACCEPTED"
	StatusHeadRejected       = "HEAD_REJECTED"
	StatusInterviewScheduled = "INTERVIEW_SCHEDULED"
	StatusSelected           = "SELECTED"
	StatusRejected           = "REJECTED"
)

// Teacher-side review tracking. Informational, never gates a transition.
const (
	TeacherStatusPending  = "PENDING"
	TeacherStatusAccepted = "ACCEPTED"
	TeacherStatusRejected = "REJECTED"
)

const (
	FinalStatusPending  = "PENDING"
	FinalStatusSelected = "SELECTED"
	FinalStatusRejected = "REJECTED"
)

// Courses offered for admission.
var Courses = []string{
	"DBMS",
	"CloudComputing",
	"Accessibility",
	"BasicComputers",
	"MachineLearning",
}

func IsValidCourse(course string) bool {
	for _, c := range Courses {
		if c == course {
			return true
		}
	}
	return false
}

// Admission represents one candidate application. Candidate fields are
// immutable after creation; only the workflow fields change, and only
// through the transition service.
type Admission struct {
	AdmissionID uint      `gorm:"primaryKey;column:admission_id" json:"admission_id"`
	Name        string    `gorm:"column:name" json:"name"`
	Email       string    `gorm:"column:email;unique" json:"email"`
	Mobile      string    `gorm:"column:mobile;unique" json:"mobile"`
	DOB         time.Time `gorm:"column:dob" json:"dob"`
	Gender      string    `gorm:"column:gender" json:"gender"`

	State            string `gorm:"column:state" json:"state"`
	District         string `gorm:"column:district" json:"district"`
	DisabilityStatus string `gorm:"column:disability_status" json:"disability_status"`
	Education        string `gorm:"column:education" json:"education"`

	Course                 string `gorm:"column:course" json:"course"`
	BasicComputerKnowledge string `gorm:"column:basic_computer_knowledge" json:"basic_computer_knowledge"`
	BasicEnglishSkills     string `gorm:"column:basic_english_skills" json:"basic_english_skills"`
	ScreenReader           string `gorm:"column:screen_reader" json:"screen_reader"`

	Status        string `gorm:"column:status;default:SUBMITTED" json:"status"`
	TeacherStatus string `gorm:"column:teacher_status;default:PENDING" json:"teacher_status"`
	FinalStatus   string `gorm:"column:final_status;default:PENDING" json:"final_status"`
	DecisionDone  bool   `gorm:"column:decision_done" json:"decision_done"`

	InterviewDate     *string `gorm:"column:interview_date" json:"interview_date,omitempty"`
	InterviewTime     *string `gorm:"column:interview_time" json:"interview_time,omitempty"`
	InterviewPlatform *string `gorm:"column:interview_platform" json:"interview_platform,omitempty"`
	InterviewLink     *string `gorm:"column:interview_link" json:"interview_link,omitempty"`

	PassportPhoto    string `gorm:"column:passport_photo" json:"passport_photo"`
	Aadhaar          string `gorm:"column:aadhaar" json:"aadhaar"`
	UDID             string `gorm:"column:udid" json:"udid"`
	DisabilityCert   string `gorm:"column:disability_cert" json:"disability_cert"`
	DegreeMemo       string `gorm:"column:degree_memo" json:"degree_memo"`
	DoctorCert       string `gorm:"column:doctor_cert" json:"doctor_cert"`
	RulesDeclaration bool   `gorm:"column:rules_declaration" json:"rules_declaration"`

	IsDeleted      bool       `gorm:"column:is_deleted" json:"is_deleted"`
	DeletedAt      *time.Time `gorm:"column:deleted_at" json:"deleted_at,omitempty"`
	DeletedBy      *uint      `gorm:"column:deleted_by" json:"deleted_by,omitempty"`
	DeletionReason *string    `gorm:"column:deletion_reason" json:"deletion_reason,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Admission) TableName() string { return "admissions" }

// InterviewScheduled reports whether all interview fields are set.
func (a *Admission) InterviewScheduled() bool {
	return a.InterviewDate != nil && a.InterviewTime != nil &&
		a.InterviewPlatform != nil && a.InterviewLink != nil
}
