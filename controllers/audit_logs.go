package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"admission-management-api/config"
	"admission-management-api/models"
)

// GetAuditLogs returns the audit trail. HEAD sees the full trail; TEACHER
// sees their own actions plus system-generated entries for their course.
func GetAuditLogs(c *gin.Context) {
	p := principalFrom(c)
	limit, offset := pagination(c)

	q := config.DB.Model(&models.AuditLog{})
	if p.Role == models.RoleTeacher {
		q = q.Where("actor_id = ? OR (actor_role = ? AND candidate_course = ?)",
			p.ID, models.RoleSystem, p.Course)
	}
	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if admissionID := c.Query("admission_id"); admissionID != "" {
		q = q.Where("admission_id = ?", admissionID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count audit logs"})
		return
	}

	var logs []models.AuditLog
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch audit logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"logs":    logs,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}
