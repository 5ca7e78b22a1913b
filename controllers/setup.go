package controllers

import (
	"github.com/gin-gonic/gin"

	"admission-management-api/services"
)

var (
	admissionService  *services.AdmissionService
	submissionService *services.SubmissionService
)

// Init wires the services used by the handlers. Called once from main.
func Init(admissions *services.AdmissionService, submissions *services.SubmissionService) {
	admissionService = admissions
	submissionService = submissions
}

func principalFrom(c *gin.Context) services.Principal {
	p := services.Principal{}
	if v, ok := c.Get("userID"); ok {
		if id, ok := v.(uint); ok {
			p.ID = id
		}
	}
	if v, ok := c.Get("name"); ok {
		p.Name, _ = v.(string)
	}
	if v, ok := c.Get("email"); ok {
		p.Email, _ = v.(string)
	}
	if v, ok := c.Get("role"); ok {
		p.Role, _ = v.(string)
	}
	if v, ok := c.Get("course"); ok {
		p.Course, _ = v.(string)
	}
	return p
}

func serviceError(c *gin.Context, err error) {
	if se, ok := services.AsServiceError(err); ok {
		c.JSON(se.HTTPStatus(), gin.H{"error": se.Message, "code": string(se.Code)})
		return
	}
	c.JSON(services.HTTPStatusOf(err), gin.H{"error": "Internal server error"})
}
