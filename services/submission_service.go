package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"admission-management-api/models"
	"admission-management-api/utils"
)

// SubmissionService creates new admissions at SUBMITTED and runs the same
// audit/notification/mail pipeline as a transition, aimed at the candidate
// and the HEAD role.
type SubmissionService struct {
	db        *gorm.DB
	notifier  *Notifier
	headEmail string
}

// NewSubmissionService wires the store, the dispatcher and the HEAD alert
// address. The address is injected rather than read ambiently so tests can
// supply fixtures.
func NewSubmissionService(db *gorm.DB, notifier *Notifier, headEmail string) *SubmissionService {
	return &SubmissionService{db: db, notifier: notifier, headEmail: strings.TrimSpace(headEmail)}
}

var skillLevels = []interface{}{"None", "Fair", "Good", "Excellent", "Outstanding"}

// SubmitRequest carries the candidate fields and the stored document paths.
type SubmitRequest struct {
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Mobile           string    `json:"mobile"`
	DOB              time.Time `json:"dob"`
	Gender           string    `json:"gender"`
	State            string    `json:"state"`
	District         string    `json:"district"`
	DisabilityStatus string    `json:"disability_status"`
	Education        string    `json:"education"`
	Course           string    `json:"course"`

	BasicComputerKnowledge string `json:"basic_computer_knowledge"`
	BasicEnglishSkills     string `json:"basic_english_skills"`
	ScreenReader           string `json:"screen_reader"`

	PassportPhoto  string `json:"passport_photo"`
	Aadhaar        string `json:"aadhaar"`
	UDID           string `json:"udid"`
	DisabilityCert string `json:"disability_cert"`
	DegreeMemo     string `json:"degree_memo"`
	DoctorCert     string `json:"doctor_cert"`

	RulesDeclaration bool `json:"rules_declaration"`
}

func (r SubmitRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Mobile, validation.Required),
		validation.Field(&r.DOB, validation.Required),
		validation.Field(&r.Gender, validation.Required, validation.In("Male", "Female", "Other")),
		validation.Field(&r.State, validation.Required),
		validation.Field(&r.District, validation.Required),
		validation.Field(&r.DisabilityStatus, validation.Required),
		validation.Field(&r.Education, validation.Required),
		validation.Field(&r.Course, validation.Required),
		validation.Field(&r.BasicComputerKnowledge, validation.Required, validation.In(skillLevels...)),
		validation.Field(&r.BasicEnglishSkills, validation.Required, validation.In(skillLevels...)),
		validation.Field(&r.ScreenReader, validation.Required, validation.In(skillLevels...)),
	)
}

// SubmitResult reports the created admission and the best-effort mail flags.
type SubmitResult struct {
	Admission *models.Admission
	Delivery  []DispatchResult
	Warnings  []string
}

// Submit validates and stores a new application. Duplicate email/mobile
// among non-deleted applications is a conflict; the existing record wins.
func (s *SubmissionService) Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	if err := req.Validate(); err != nil {
		return nil, wrapError(ErrCodeValidation, "invalid application", err)
	}
	if !models.IsValidCourse(req.Course) {
		return nil, newError(ErrCodeValidation, fmt.Sprintf("unknown course %q", req.Course))
	}
	if !utils.ValidateEmail(req.Email) {
		return nil, newError(ErrCodeValidation, "invalid email address")
	}
	if !utils.ValidateMobile(req.Mobile) {
		return nil, newError(ErrCodeValidation, "invalid mobile number")
	}
	if !req.RulesDeclaration {
		return nil, newError(ErrCodeValidation, "rules declaration must be accepted")
	}
	if missing := missingDocuments(req); len(missing) > 0 {
		return nil, newError(ErrCodeValidation,
			fmt.Sprintf("missing required documents: %s", strings.Join(missing, ", ")))
	}

	now := time.Now()
	adm := &models.Admission{
		Name:                   strings.TrimSpace(req.Name),
		Email:                  strings.ToLower(strings.TrimSpace(req.Email)),
		Mobile:                 strings.TrimSpace(req.Mobile),
		DOB:                    req.DOB,
		Gender:                 req.Gender,
		State:                  req.State,
		District:               req.District,
		DisabilityStatus:       req.DisabilityStatus,
		Education:              req.Education,
		Course:                 strings.TrimSpace(req.Course),
		BasicComputerKnowledge: req.BasicComputerKnowledge,
		BasicEnglishSkills:     req.BasicEnglishSkills,
		ScreenReader:           req.ScreenReader,
		Status:                 models.StatusSubmitted,
		TeacherStatus:          models.TeacherStatusPending,
		FinalStatus:            models.FinalStatusPending,
		PassportPhoto:          req.PassportPhoto,
		Aadhaar:                req.Aadhaar,
		UDID:                   req.UDID,
		DisabilityCert:         req.DisabilityCert,
		DegreeMemo:             req.DegreeMemo,
		DoctorCert:             req.DoctorCert,
		RulesDeclaration:       req.RulesDeclaration,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	var notice *models.Notification
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(adm).Error; err != nil {
			if isDuplicateKey(err) {
				return newError(ErrCodeDuplicate,
					"you have already submitted the form with this email or mobile")
			}
			return wrapError(ErrCodeInternal, "failed to save admission", err)
		}

		admissionID := adm.AdmissionID
		meta, _ := json.Marshal(map[string]interface{}{"course": adm.Course})
		metaStr := string(meta)
		audit := &models.AuditLog{
			TraceID:         uuid.NewString(),
			Action:          "ADMISSION_SUBMITTED",
			ActorRole:       models.RoleSystem,
			ActorName:       adm.Name,
			AdmissionID:     &admissionID,
			CandidateName:   adm.Name,
			CandidateCourse: adm.Course,
			Note:            "Application submitted by candidate",
			Meta:            &metaStr,
			CreatedAt:       now,
		}
		if err := tx.Create(audit).Error; err != nil {
			return wrapError(ErrCodeInternal, "failed to write audit log", err)
		}

		noticeMeta, _ := json.Marshal(map[string]interface{}{"admission_id": admissionID})
		noticeMetaStr := string(noticeMeta)
		course := adm.Course
		notice = &models.Notification{
			Title:     "New admission request",
			Message:   fmt.Sprintf("%s applied for %s and awaits head review.", adm.Name, adm.Course),
			Role:      models.NotifyRoleHead,
			Course:    &course,
			ReadBy:    "[]",
			Meta:      &noticeMetaStr,
			CreatedAt: now,
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
		return nil, wrapError(ErrCodeInternal, "submission failed", err)
	}

	attempts := s.submitAttempts(adm)
	if push := pushAttemptFor(ctx, s.db, s.notifier, notice); push != nil {
		attempts = append(attempts, *push)
	}
	delivery := s.notifier.Dispatch(ctx, attempts)

	return &SubmitResult{
		Admission: adm,
		Delivery:  delivery,
		Warnings:  Warnings(delivery),
	}, nil
}

func (s *SubmissionService) submitAttempts(adm *models.Admission) []DispatchAttempt {
	subject, html := submissionCandidateMail(adm.Name)
	attempts := []DispatchAttempt{{
		Channel: ChannelEmail, To: []string{adm.Email}, Subject: subject, Body: html,
	}}

	if s.headEmail != "" {
		headSubject, headHTML := submissionHeadMail(adm.Name, adm.Course, adm.Mobile)
		attempts = append(attempts, DispatchAttempt{
			Channel: ChannelEmail, To: []string{s.headEmail}, Subject: headSubject, Body: headHTML,
		})
	} else {
		log.Println("HEAD_EMAIL is not configured; skipping head notification email")
	}
	return attempts
}

func missingDocuments(req SubmitRequest) []string {
	var missing []string
	for _, doc := range []struct {
		name string
		path string
	}{
		{"passport_photo", req.PassportPhoto},
		{"aadhaar", req.Aadhaar},
		{"udid", req.UDID},
		{"disability_cert", req.DisabilityCert},
		{"degree_memo", req.DegreeMemo},
		{"doctor_cert", req.DoctorCert},
	} {
		if strings.TrimSpace(doc.path) == "" {
			missing = append(missing, doc.name)
		}
	}
	return missing
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "Duplicate entry") ||
		strings.Contains(err.Error(), "Error 1062")
}
