package models

import "time"

// AuditLog is an append-only record of one workflow action. Rows are created
// exactly once per successful transition and are never updated or deleted.
type AuditLog struct {
	AuditLogID      uint      `gorm:"primaryKey;column:audit_log_id" json:"audit_log_id"`
	TraceID         string    `gorm:"column:trace_id" json:"trace_id"`
	Action          string    `gorm:"column:action" json:"action"`
	ActorID         *uint     `gorm:"column:actor_id" json:"actor_id,omitempty"`
	ActorRole       string    `gorm:"column:actor_role" json:"actor_role"`
	ActorName       string    `gorm:"column:actor_name" json:"actor_name"`
	AdmissionID     *uint     `gorm:"column:admission_id" json:"admission_id,omitempty"`
	CandidateName   string    `gorm:"column:candidate_name" json:"candidate_name"`
	CandidateCourse string    `gorm:"column:candidate_course" json:"candidate_course"`
	Note            string    `gorm:"column:note" json:"note"`
	Meta            *string   `gorm:"column:meta" json:"meta,omitempty"`
	CreatedAt       time.Time `gorm:"column:created_at" json:"created_at"`
}

func (AuditLog) TableName() string { return "audit_logs" }
