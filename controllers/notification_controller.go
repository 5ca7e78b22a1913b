package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"admission-management-api/config"
	"admission-management-api/models"
	"admission-management-api/services"
)

func pagination(c *gin.Context) (limit, offset int) {
	limit = 20
	offset = 0
	if v, err := strconv.Atoi(strings.TrimSpace(c.Query("limit"))); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(c.Query("offset"))); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}

// scopedNotifications narrows the notifications table to what the principal
// may see: notices addressed to them directly, or to their role (teachers
// additionally filtered by course). Every notification read or write goes
// through this scope.
func scopedNotifications(db *gorm.DB, p services.Principal) *gorm.DB {
	q := db.Model(&models.Notification{}).
		Where("user_id = ? OR (user_id IS NULL AND role IN ?)",
			p.ID, []string{p.Role, models.NotifyRoleAll})
	if p.Role == models.RoleTeacher {
		q = q.Where("course IS NULL OR course = ?", p.Course)
	}
	return q
}

func GetNotifications(c *gin.Context) {
	p := principalFrom(c)
	limit, offset := pagination(c)
	unreadOnly := strings.TrimSpace(c.Query("unreadOnly"))

	var items []models.Notification
	if err := scopedNotifications(config.DB, p).
		Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	type notificationView struct {
		models.Notification
		IsRead bool `json:"is_read"`
	}
	views := make([]notificationView, 0, len(items))
	for _, n := range items {
		read := n.IsReadBy(p.ID)
		if (unreadOnly == "1" || strings.EqualFold(unreadOnly, "true")) && read {
			continue
		}
		views = append(views, notificationView{Notification: n, IsRead: read})
	}

	c.JSON(http.StatusOK, gin.H{"items": views})
}

func GetNotificationCounter(c *gin.Context) {
	p := principalFrom(c)

	var items []models.Notification
	if err := scopedNotifications(config.DB, p).Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count notifications"})
		return
	}

	unread := 0
	for _, n := range items {
		if !n.IsReadBy(p.ID) {
			unread++
		}
	}
	c.JSON(http.StatusOK, gin.H{"unread": unread})
}

func MarkNotificationRead(c *gin.Context) {
	p := principalFrom(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		// Scoped fetch: a principal can only mark notices addressed to them.
		var n models.Notification
		if err := scopedNotifications(tx, p).
			Where("notification_id = ?", id).First(&n).Error; err != nil {
			return err
		}
		if !n.MarkReadBy(p.ID) {
			return nil
		}
		return tx.Model(&models.Notification{}).
			Where("notification_id = ?", n.NotificationID).
			Update("read_by", n.ReadBy).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notification as read"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func MarkAllNotificationsRead(c *gin.Context) {
	p := principalFrom(c)

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var items []models.Notification
		if err := scopedNotifications(tx, p).Find(&items).Error; err != nil {
			return err
		}
		for i := range items {
			if !items[i].MarkReadBy(p.ID) {
				continue
			}
			if err := tx.Model(&models.Notification{}).
				Where("notification_id = ?", items[i].NotificationID).
				Update("read_by", items[i].ReadBy).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notifications as read"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// RegisterPushToken stores the caller's Expo device token for push delivery.
func RegisterPushToken(c *gin.Context) {
	p := principalFrom(c)

	var body struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Push token is required"})
		return
	}
	token := strings.TrimSpace(body.Token)
	if !config.IsExpoPushToken(token) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid push token format"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("user_id = ? AND delete_at IS NULL", p.ID).First(&user).Error; err != nil {
			return err
		}
		if !user.AddPushToken(token) {
			return nil
		}
		return tx.Model(&models.User{}).
			Where("user_id = ?", user.UserID).
			Update("push_tokens", user.PushTokens).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register push token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
