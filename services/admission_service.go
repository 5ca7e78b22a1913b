package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"admission-management-api/models"
)

// AdmissionService applies role-gated status transitions to admissions.
// Each successful transition writes the new status, exactly one audit row
// and exactly one in-app notification atomically, then fans out to the
// best-effort side channels (email/SMS).
type AdmissionService struct {
	db        *gorm.DB
	directory TeacherDirectory
	notifier  *Notifier
}

func NewAdmissionService(db *gorm.DB, directory TeacherDirectory, notifier *Notifier) *AdmissionService {
	return &AdmissionService{db: db, directory: directory, notifier: notifier}
}

// TransitionResult is the outcome of one applied transition. Delivery holds
// the per-channel side-effect results; failed deliveries become Warnings on
// an otherwise successful response.
type TransitionResult struct {
	Admission *models.Admission
	Delivery  []DispatchResult
	Warnings  []string
}

const deletionReasonMaxLen = 500

// Apply validates and executes one named transition.
//
// The status write is a conditional update scoped by the transition's
// allowed source statuses, so a stale request — including the loser of two
// concurrent attempts — updates zero rows and surfaces as not found.
func (s *AdmissionService) Apply(ctx context.Context, admissionID uint, p Principal, t Transition, payload TransitionPayload) (*TransitionResult, error) {
	rule, err := ruleFor(t)
	if err != nil {
		return nil, err
	}

	var adm models.Admission
	if err := s.db.WithContext(ctx).
		Where("admission_id = ? AND is_deleted = 0", admissionID).
		First(&adm).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(ErrCodeNotFound, "admission not found")
		}
		return nil, wrapError(ErrCodeInternal, "failed to load admission", err)
	}

	if err := Authorize(p, t, adm.Course); err != nil {
		return nil, err
	}

	if t == TransitionScheduleInterview {
		if payload.Interview == nil {
			return nil, newError(ErrCodeValidation, "interview details are required")
		}
		if err := payload.Interview.Validate(); err != nil {
			return nil, wrapError(ErrCodeValidation, "invalid interview details", err)
		}
	}

	// HeadApprove hands the candidate to the course's teachers; without a
	// reachable teacher the transition must not happen.
	var teacherEmails []string
	if rule.needsTeacher {
		if len(s.directory.Lookup(adm.Course)) == 0 {
			return nil, newError(ErrCodeConfiguration,
				fmt.Sprintf("no teacher found for course: %s", adm.Course))
		}
		teacherEmails = s.directory.Emails(adm.Course)
		if len(teacherEmails) == 0 {
			return nil, newError(ErrCodeConfiguration,
				fmt.Sprintf("no teacher email configured for course: %s", adm.Course))
		}
	}

	now := time.Now()
	updates := s.buildUpdates(rule, t, p, payload, now)
	audit := s.buildAudit(&adm, p, rule, t, payload, now)
	notice := s.buildNotification(&adm, p, t, payload, now)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&models.Admission{}).
			Where("admission_id = ? AND is_deleted = 0", admissionID)
		if len(rule.sources) > 0 {
			query = query.Where("status IN ?", rule.sources)
		}

		res := query.Updates(updates)
		if res.Error != nil {
			return wrapError(ErrCodeInternal, "failed to update admission", res.Error)
		}
		if res.RowsAffected == 0 {
			// Raced by another transition or not in a valid source state.
			return newError(ErrCodeNotFound, "admission not found in the expected state")
		}

		if err := tx.Create(audit).Error; err != nil {
			return wrapError(ErrCodeInternal, "failed to write audit log", err)
		}
		if err := tx.Create(notice).Error; err != nil {
			return wrapError(ErrCodeInternal, "failed to write notification", err)
		}
		return nil
	})
	if err != nil {
		var se *ServiceError
		if errors.As(err, &se) {
			return nil, se
		}
		return nil, wrapError(ErrCodeInternal, "transition failed", err)
	}

	s.applyInMemory(&adm, rule, t, p, payload, now)

	attempts := s.dispatchAttempts(&adm, t, payload, teacherEmails)
	if push := pushAttemptFor(ctx, s.db, s.notifier, notice); push != nil {
		attempts = append(attempts, *push)
	}
	delivery := s.notifier.Dispatch(ctx, attempts)

	return &TransitionResult{
		Admission: &adm,
		Delivery:  delivery,
		Warnings:  Warnings(delivery),
	}, nil
}

func (s *AdmissionService) buildUpdates(rule transitionRule, t Transition, p Principal, payload TransitionPayload, now time.Time) map[string]interface{} {
	updates := map[string]interface{}{"updated_at": now}

	if t == TransitionSoftDelete {
		reason := payload.Reason
		if len(reason) > deletionReasonMaxLen {
			reason = reason[:deletionReasonMaxLen]
		}
		updates["is_deleted"] = true
		updates["deleted_at"] = now
		updates["deleted_by"] = p.ID
		updates["deletion_reason"] = reason
		return updates
	}

	updates["status"] = rule.target
	if rule.decisionDone {
		updates["decision_done"] = true
		updates["final_status"] = rule.finalStatus
	}
	if rule.teacherStatus != "" {
		updates["teacher_status"] = rule.teacherStatus
	}
	if t == TransitionScheduleInterview {
		updates["interview_date"] = payload.Interview.Date
		updates["interview_time"] = payload.Interview.Time
		updates["interview_platform"] = payload.Interview.Platform
		updates["interview_link"] = payload.Interview.Link
	}
	return updates
}

func (s *AdmissionService) applyInMemory(adm *models.Admission, rule transitionRule, t Transition, p Principal, payload TransitionPayload, now time.Time) {
	adm.UpdatedAt = now

	if t == TransitionSoftDelete {
		reason := payload.Reason
		if len(reason) > deletionReasonMaxLen {
			reason = reason[:deletionReasonMaxLen]
		}
		adm.IsDeleted = true
		adm.DeletedAt = &now
		adm.DeletedBy = &p.ID
		adm.DeletionReason = &reason
		return
	}

	adm.Status = rule.target
	if rule.decisionDone {
		adm.DecisionDone = true
		adm.FinalStatus = rule.finalStatus
	}
	if rule.teacherStatus != "" {
		adm.TeacherStatus = rule.teacherStatus
	}
	if t == TransitionScheduleInterview {
		adm.InterviewDate = &payload.Interview.Date
		adm.InterviewTime = &payload.Interview.Time
		adm.InterviewPlatform = &payload.Interview.Platform
		adm.InterviewLink = &payload.Interview.Link
	}
}

func (s *AdmissionService) buildAudit(adm *models.Admission, p Principal, rule transitionRule, t Transition, payload TransitionPayload, now time.Time) *models.AuditLog {
	meta := map[string]interface{}{"transition": string(t)}
	switch t {
	case TransitionScheduleInterview:
		meta["interview"] = payload.Interview
	case TransitionSoftDelete:
		meta["reason"] = payload.Reason
	}
	if rule.target != "" {
		meta["status"] = rule.target
	}
	serialized, _ := json.Marshal(meta)
	metaStr := string(serialized)

	admissionID := adm.AdmissionID
	actorID := p.ID
	return &models.AuditLog{
		TraceID:         uuid.NewString(),
		Action:          rule.auditAction,
		ActorID:         &actorID,
		ActorRole:       p.Role,
		ActorName:       p.Name,
		AdmissionID:     &admissionID,
		CandidateName:   adm.Name,
		CandidateCourse: adm.Course,
		Note:            transitionNote(t),
		Meta:            &metaStr,
		CreatedAt:       now,
	}
}

func transitionNote(t Transition) string {
	switch t {
	case TransitionHeadApprove:
		return "Head approved; forwarded to course teacher"
	case TransitionHeadReject:
		return "Head rejected the application"
	case TransitionScheduleInterview:
		return "Interview scheduled by teacher"
	case TransitionFinalApprove:
		return "Candidate selected after interview"
	case TransitionFinalReject:
		return "Candidate rejected after interview"
	case TransitionSoftDelete:
		return "Application removed by head"
	default:
		return ""
	}
}

func (s *AdmissionService) buildNotification(adm *models.Admission, p Principal, t Transition, payload TransitionPayload, now time.Time) *models.Notification {
	meta, _ := json.Marshal(map[string]interface{}{"admission_id": adm.AdmissionID})
	metaStr := string(meta)
	course := adm.Course

	notice := &models.Notification{
		Role:      models.NotifyRoleHead,
		Course:    &course,
		ReadBy:    "[]",
		Meta:      &metaStr,
		CreatedAt: now,
	}

	switch t {
	case TransitionHeadApprove:
		// The course teacher is the next responsible party.
		notice.Role = models.NotifyRoleTeacher
		notice.Title = "Candidate approved for interview"
		notice.Message = fmt.Sprintf("%s (%s) was approved by the Head and awaits interview scheduling.", adm.Name, adm.Course)
	case TransitionHeadReject:
		notice.Title = "Application rejected by Head"
		notice.Message = fmt.Sprintf("%s (%s) was rejected at head review.", adm.Name, adm.Course)
	case TransitionScheduleInterview:
		notice.Title = "Interview scheduled"
		notice.Message = fmt.Sprintf("%s scheduled an interview for %s (%s).", p.Name, adm.Name, adm.Course)
	case TransitionFinalApprove:
		notice.Title = "Candidate selected"
		notice.Message = fmt.Sprintf("%s (%s) was selected after the interview.", adm.Name, adm.Course)
	case TransitionFinalReject:
		notice.Title = "Candidate rejected"
		notice.Message = fmt.Sprintf("%s (%s) was rejected after the interview.", adm.Name, adm.Course)
	case TransitionSoftDelete:
		notice.Title = "Application deleted"
		notice.Message = fmt.Sprintf("%s deleted the application of %s (%s).", p.Name, adm.Name, adm.Course)
	}
	return notice
}

func (s *AdmissionService) dispatchAttempts(adm *models.Admission, t Transition, payload TransitionPayload, teacherEmails []string) []DispatchAttempt {
	var attempts []DispatchAttempt

	switch t {
	case TransitionHeadApprove:
		subject, html := headApprovedTeacherMail(s.directory.Names(adm.Course), adm.Name, adm.Course)
		attempts = append(attempts, DispatchAttempt{
			Channel: ChannelEmail, To: teacherEmails, Subject: subject, Body: html,
		})
	case TransitionHeadReject:
		subject, html := headRejectedCandidateMail(adm.Name)
		attempts = append(attempts, DispatchAttempt{
			Channel: ChannelEmail, To: []string{adm.Email}, Subject: subject, Body: html,
		})
	case TransitionScheduleInterview:
		subject, html := interviewScheduledMail(adm.Name, *payload.Interview)
		attempts = append(attempts, DispatchAttempt{
			Channel: ChannelEmail, To: []string{adm.Email}, Subject: subject, Body: html,
		})
		if s.notifier.HasSMS() && adm.Mobile != "" {
			attempts = append(attempts, DispatchAttempt{
				Channel: ChannelSMS, To: []string{adm.Mobile},
				Body: interviewScheduledSMS(adm.Name, *payload.Interview),
			})
		}
	case TransitionFinalApprove:
		subject, html := finalSelectedMail(adm.Name, adm.Course)
		attempts = append(attempts, DispatchAttempt{
			Channel: ChannelEmail, To: []string{adm.Email}, Subject: subject, Body: html,
		})
	case TransitionFinalReject:
		subject, html := finalRejectedMail(adm.Name)
		attempts = append(attempts, DispatchAttempt{
			Channel: ChannelEmail, To: []string{adm.Email}, Subject: subject, Body: html,
		})
	}
	return attempts
}
