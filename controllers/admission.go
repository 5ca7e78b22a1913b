package controllers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"admission-management-api/config"
	"admission-management-api/models"
	"admission-management-api/services"
	"admission-management-api/utils"
)

// documentFields maps multipart field names to request setters. The public
// form historically posts "marks" for the degree memo, so both names are
// accepted for that slot.
var documentFields = []struct {
	field    string
	fallback string
	assign   func(req *services.SubmitRequest, path string)
}{
	{field: "passport_photo", assign: func(r *services.SubmitRequest, p string) { r.PassportPhoto = p }},
	{field: "aadhaar", assign: func(r *services.SubmitRequest, p string) { r.Aadhaar = p }},
	{field: "udid", assign: func(r *services.SubmitRequest, p string) { r.UDID = p }},
	{field: "disability_cert", assign: func(r *services.SubmitRequest, p string) { r.DisabilityCert = p }},
	{field: "degree_memo", fallback: "marks", assign: func(r *services.SubmitRequest, p string) { r.DegreeMemo = p }},
	{field: "doctor_cert", assign: func(r *services.SubmitRequest, p string) { r.DoctorCert = p }},
}

func uploadPath() string {
	path := os.Getenv("UPLOAD_PATH")
	if path == "" {
		path = "./uploads"
	}
	return path
}

func saveDocument(c *gin.Context, file *multipart.FileHeader) (string, error) {
	name := fmt.Sprintf("%s-%s", uuid.NewString(), filepath.Base(file.Filename))
	dest := filepath.Join(uploadPath(), name)
	if err := c.SaveUploadedFile(file, dest); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}

// SubmitAdmission accepts the public multipart application form.
func SubmitAdmission(c *gin.Context) {
	dob, err := time.Parse("2006-01-02", strings.TrimSpace(c.PostForm("dob")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date of birth, expected YYYY-MM-DD"})
		return
	}

	req := services.SubmitRequest{
		Name:                   utils.SanitizeInput(c.PostForm("name")),
		Email:                  utils.SanitizeInput(c.PostForm("email")),
		Mobile:                 utils.SanitizeInput(c.PostForm("mobile")),
		DOB:                    dob,
		Gender:                 utils.SanitizeInput(c.PostForm("gender")),
		State:                  utils.SanitizeInput(c.PostForm("state")),
		District:               utils.SanitizeInput(c.PostForm("district")),
		DisabilityStatus:       utils.SanitizeInput(c.PostForm("disability_status")),
		Education:              utils.SanitizeInput(c.PostForm("education")),
		Course:                 utils.SanitizeInput(c.PostForm("course")),
		BasicComputerKnowledge: utils.SanitizeInput(c.PostForm("basic_computer_knowledge")),
		BasicEnglishSkills:     utils.SanitizeInput(c.PostForm("basic_english_skills")),
		ScreenReader:           utils.SanitizeInput(c.PostForm("screen_reader")),
		RulesDeclaration:       c.PostForm("declaration") == "true",
	}

	form, err := c.MultipartForm()
	if err != nil || form == nil || len(form.File) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files were uploaded. Please attach all required documents."})
		return
	}

	for _, doc := range documentFields {
		file, err := c.FormFile(doc.field)
		if err != nil && doc.fallback != "" {
			file, err = c.FormFile(doc.fallback)
		}
		if err != nil {
			continue // presence is validated by the submission service
		}
		path, err := saveDocument(c, file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store uploaded document"})
			return
		}
		doc.assign(&req, path)
	}

	result, err := submissionService.Submit(c.Request.Context(), req)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"message":      "Admission submitted successfully!",
		"admission_id": result.Admission.AdmissionID,
		"delivery":     result.Delivery,
		"warnings":     result.Warnings,
	})
}

func activeAdmissions() *gorm.DB {
	return config.DB.Model(&models.Admission{}).Where("is_deleted = 0")
}

func respondAdmissions(c *gin.Context, query *gorm.DB) {
	var admissions []models.Admission
	if err := query.Order("created_at DESC").Find(&admissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch admissions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"admissions": admissions,
		"total":      len(admissions),
	})
}

// GetAdmissions is the role-scoped dashboard listing: HEAD sees everything,
// TEACHER sees head-accepted candidates for their own course.
func GetAdmissions(c *gin.Context) {
	p := principalFrom(c)

	query := activeAdmissions()
	if p.Role == models.RoleTeacher {
		query = query.Where("course = ? AND status = ?", p.Course, models.StatusHeadAccepted)
	}
	respondAdmissions(c, query)
}

// GetSubmitted lists applications waiting for head review (HEAD only).
func GetSubmitted(c *gin.Context) {
	respondAdmissions(c, activeAdmissions().Where("status = ?", models.StatusSubmitted))
}

// GetHeadAccepted lists head-approved applications (HEAD only).
func GetHeadAccepted(c *gin.Context) {
	respondAdmissions(c, activeAdmissions().Where("status = ?", models.StatusHeadAccepted))
}

// GetHeadRejected lists head-rejected applications (HEAD only).
func GetHeadRejected(c *gin.Context) {
	respondAdmissions(c, activeAdmissions().Where("status = ?", models.StatusHeadRejected))
}

// GetFinalSelected lists finally selected candidates (HEAD only).
func GetFinalSelected(c *gin.Context) {
	respondAdmissions(c, activeAdmissions().Where("final_status = ?", models.FinalStatusSelected))
}

// GetFinalRejected lists finally rejected candidates (HEAD only).
func GetFinalRejected(c *gin.Context) {
	respondAdmissions(c, activeAdmissions().Where("final_status = ?", models.FinalStatusRejected))
}

// GetTeacherAccepted lists selected candidates; teachers see their course only.
func GetTeacherAccepted(c *gin.Context) {
	p := principalFrom(c)

	query := activeAdmissions().Where("final_status = ?", models.FinalStatusSelected)
	if p.Role == models.RoleTeacher {
		query = query.Where("course = ?", p.Course)
	}
	respondAdmissions(c, query)
}

// GetTeacherRejected lists rejected candidates; teachers see their course only.
func GetTeacherRejected(c *gin.Context) {
	p := principalFrom(c)

	query := activeAdmissions().Where("final_status = ?", models.FinalStatusRejected)
	if p.Role == models.RoleTeacher {
		query = query.Where("course = ?", p.Course)
	}
	respondAdmissions(c, query)
}

// GetTeacherHeadAccepted lists candidates awaiting interview scheduling for
// the teacher's course (TEACHER only).
func GetTeacherHeadAccepted(c *gin.Context) {
	p := principalFrom(c)
	respondAdmissions(c, activeAdmissions().
		Where("course = ? AND status = ?", p.Course, models.StatusHeadAccepted))
}

// GetInterviewRequired lists scheduled interviews; teachers see their course only.
func GetInterviewRequired(c *gin.Context) {
	p := principalFrom(c)

	query := activeAdmissions().Where("status = ?", models.StatusInterviewScheduled)
	if p.Role == models.RoleTeacher {
		query = query.Where("course = ?", p.Course)
	}
	respondAdmissions(c, query)
}
