package services

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"admission-management-api/models"
)

// Transition names the role-gated state changes on an admission. Every
// mutation of an admission after creation goes through one of these.
type Transition string

const (
	TransitionHeadApprove       Transition = "HEAD_APPROVE"
	TransitionHeadReject        Transition = "HEAD_REJECT"
	TransitionScheduleInterview Transition = "SCHEDULE_INTERVIEW"
	TransitionFinalApprove      Transition = "FINAL_APPROVE"
	TransitionFinalReject       Transition = "FINAL_REJECT"
	TransitionSoftDelete        Transition = "SOFT_DELETE"
)

// Principal is the verified identity attached to a request.
type Principal struct {
	ID     uint
	Name   string
	Email  string
	Role   string
	Course string
}

// InterviewPayload carries the interview details for ScheduleInterview.
// All four fields are required.
type InterviewPayload struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Platform string `json:"platform"`
	Link     string `json:"link"`
}

// notBlank rejects whitespace-only values, which validation.Required lets
// through.
func notBlank(value interface{}) error {
	if s, _ := value.(string); strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
}

func (p InterviewPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Date, validation.Required, validation.By(notBlank)),
		validation.Field(&p.Time, validation.Required, validation.By(notBlank)),
		validation.Field(&p.Platform, validation.Required, validation.By(notBlank)),
		validation.Field(&p.Link, validation.Required, validation.By(notBlank)),
	)
}

// TransitionPayload is the tagged per-transition input: ScheduleInterview
// requires Interview, SoftDelete may carry Reason; other transitions take
// no payload.
type TransitionPayload struct {
	Interview *InterviewPayload
	Reason    string
}

type transitionRule struct {
	// sources is the set of statuses the transition may start from.
	// Empty means any non-deleted record (SoftDelete keeps the status).
	sources       []string
	role          string
	courseScoped  bool
	target        string
	finalStatus   string
	teacherStatus string
	decisionDone  bool
	needsTeacher  bool
	auditAction   string
}

var transitionRules = map[Transition]transitionRule{
	TransitionHeadApprove: {
		sources:      []string{models.StatusSubmitted},
		role:         models.RoleHead,
		target:       models.StatusHeadAccepted,
		needsTeacher: true,
		auditAction:  "HEAD_APPROVED",
	},
	TransitionHeadReject: {
		sources:      []string{models.StatusSubmitted},
		role:         models.RoleHead,
		target:       models.StatusHeadRejected,
		finalStatus:  models.FinalStatusRejected,
		decisionDone: true,
		auditAction:  "HEAD_REJECTED",
	},
	TransitionScheduleInterview: {
		sources:      []string{models.StatusHeadAccepted},
		role:         models.RoleTeacher,
		courseScoped: true,
		target:       models.StatusInterviewScheduled,
		auditAction:  "INTERVIEW_SCHEDULED",
	},
	TransitionFinalApprove: {
		sources:       []string{models.StatusInterviewScheduled},
		role:          models.RoleTeacher,
		courseScoped:  true,
		target:        models.StatusSelected,
		finalStatus:   models.FinalStatusSelected,
		teacherStatus: models.TeacherStatusAccepted,
		decisionDone:  true,
		auditAction:   "FINAL_SELECTED",
	},
	TransitionFinalReject: {
		sources:       []string{models.StatusInterviewScheduled},
		role:          models.RoleTeacher,
		courseScoped:  true,
		target:        models.StatusRejected,
		finalStatus:   models.FinalStatusRejected,
		teacherStatus: models.TeacherStatusRejected,
		decisionDone:  true,
		auditAction:   "FINAL_REJECTED",
	},
	TransitionSoftDelete: {
		role:        models.RoleHead,
		auditAction: "ADMISSION_DELETED",
	},
}

func ruleFor(t Transition) (transitionRule, error) {
	rule, ok := transitionRules[t]
	if !ok {
		return transitionRule{}, newError(ErrCodeValidation, fmt.Sprintf("unknown transition %q", t))
	}
	return rule, nil
}

// Authorize is the single role/course gate for transitions. It is pure:
// every transition entry point must call it before touching state.
func Authorize(p Principal, t Transition, candidateCourse string) error {
	rule, err := ruleFor(t)
	if err != nil {
		return err
	}
	if p.Role != rule.role {
		return newError(ErrCodeForbidden, fmt.Sprintf("only %s can perform this action", rule.role))
	}
	if rule.courseScoped && p.Course != candidateCourse {
		return newError(ErrCodeCourseMismatch, "you can only act on candidates from your course")
	}
	return nil
}

// Terminal reports whether the transition records a final decision.
func Terminal(t Transition) bool {
	rule, ok := transitionRules[t]
	return ok && rule.decisionDone
}
