package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"admission-management-api/services"
)

func admissionIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid admission id"})
		return 0, false
	}
	return uint(id), true
}

func applyTransition(c *gin.Context, t services.Transition, payload services.TransitionPayload, message string) {
	id, ok := admissionIDParam(c)
	if !ok {
		return
	}

	result, err := admissionService.Apply(c.Request.Context(), id, principalFrom(c), t, payload)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   message,
		"admission": result.Admission,
		"delivery":  result.Delivery,
		"warnings":  result.Warnings,
	})
}

// HeadApprove forwards a submitted application to the course teacher.
func HeadApprove(c *gin.Context) {
	applyTransition(c, services.TransitionHeadApprove, services.TransitionPayload{},
		"Candidate approved and forwarded to the course teacher")
}

// HeadReject declines a submitted application.
func HeadReject(c *gin.Context) {
	var body struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&body)

	applyTransition(c, services.TransitionHeadReject,
		services.TransitionPayload{Reason: body.Reason},
		"Candidate rejected")
}

// HeadDelete soft-deletes an admission record with an audit trail.
func HeadDelete(c *gin.Context) {
	var body struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&body)

	applyTransition(c, services.TransitionSoftDelete,
		services.TransitionPayload{Reason: body.Reason},
		"Admission deleted")
}
