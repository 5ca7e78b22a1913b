package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"admission-management-api/services"
)

// ScheduleInterview records interview details and notifies the candidate.
func ScheduleInterview(c *gin.Context) {
	var interview services.InterviewPayload
	if err := c.ShouldBindJSON(&interview); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	applyTransition(c, services.TransitionScheduleInterview,
		services.TransitionPayload{Interview: &interview},
		"Interview scheduled and candidate notified")
}

// FinalApprove selects the candidate after the interview.
func FinalApprove(c *gin.Context) {
	applyTransition(c, services.TransitionFinalApprove, services.TransitionPayload{},
		"Candidate selected")
}

// FinalReject declines the candidate after the interview.
func FinalReject(c *gin.Context) {
	var body struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&body)

	applyTransition(c, services.TransitionFinalReject,
		services.TransitionPayload{Reason: body.Reason},
		"Candidate rejected")
}
