package models

import (
	"encoding/json"
	"time"
)

// Notification target audiences.
const (
	NotifyRoleHead    = "HEAD"
	NotifyRoleTeacher = "TEACHER"
	NotifyRoleAll     = "ALL"
)

// Notification is an in-app notice produced by the transition engine. It is
// addressed either to a role (optionally narrowed to a course) or to a single
// user. ReadBy holds a JSON array of user ids that have read it.
type Notification struct {
	NotificationID uint       `gorm:"primaryKey;column:notification_id" json:"notification_id"`
	Title          string     `gorm:"column:title" json:"title"`
	Message        string     `gorm:"column:message" json:"message"`
	Role           string     `gorm:"column:role;default:ALL" json:"role"`
	Course         *string    `gorm:"column:course" json:"course,omitempty"`
	UserID         *uint      `gorm:"column:user_id" json:"user_id,omitempty"`
	ReadBy         string     `gorm:"column:read_by;default:[]" json:"read_by"`
	Meta           *string    `gorm:"column:meta" json:"meta,omitempty"`
	CreatedAt      time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      *time.Time `gorm:"column:updated_at" json:"-"`
}

func (Notification) TableName() string { return "notifications" }

// ReadByIDs decodes the reader set. A malformed column yields an empty set.
func (n *Notification) ReadByIDs() []uint {
	if n.ReadBy == "" {
		return nil
	}
	var ids []uint
	if err := json.Unmarshal([]byte(n.ReadBy), &ids); err != nil {
		return nil
	}
	return ids
}

func (n *Notification) IsReadBy(userID uint) bool {
	for _, id := range n.ReadByIDs() {
		if id == userID {
			return true
		}
	}
	return false
}

// MarkReadBy adds userID to the reader set. Returns false when the user had
// already read the notification.
func (n *Notification) MarkReadBy(userID uint) bool {
	if n.IsReadBy(userID) {
		return false
	}
	ids := append(n.ReadByIDs(), userID)
	encoded, err := json.Marshal(ids)
	if err != nil {
		return false
	}
	n.ReadBy = string(encoded)
	return true
}
