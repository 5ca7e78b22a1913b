package services

import (
	"context"
	"log"

	"gorm.io/gorm"

	"admission-management-api/models"
)

// pushAttemptFor resolves the device tokens of the users an in-app notice
// addresses (by role, teachers narrowed to the course) and turns the notice
// into one push attempt. Nil when push is not wired or nobody registered a
// token; a lookup failure is logged and swallowed, since push is a
// best-effort channel.
func pushAttemptFor(ctx context.Context, db *gorm.DB, notifier *Notifier, notice *models.Notification) *DispatchAttempt {
	if !notifier.HasPush() {
		return nil
	}

	query := db.WithContext(ctx).
		Where("role = ? AND delete_at IS NULL", notice.Role)
	if notice.Role == models.NotifyRoleTeacher && notice.Course != nil {
		query = query.Where("course = ?", *notice.Course)
	}

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		log.Printf("push token lookup failed (role=%s): %v", notice.Role, err)
		return nil
	}

	var tokens []string
	seen := make(map[string]bool)
	for i := range users {
		for _, token := range users[i].PushTokenList() {
			if !seen[token] {
				seen[token] = true
				tokens = append(tokens, token)
			}
		}
	}
	if len(tokens) == 0 {
		return nil
	}

	return &DispatchAttempt{
		Channel: ChannelPush,
		To:      tokens,
		Subject: notice.Title,
		Body:    notice.Message,
	}
}
