package models

import (
	"encoding/json"
	"time"
)

// Reviewer roles. SYSTEM is used as the actor role on audit entries written
// without a human actor (e.g. candidate submissions).
const (
	RoleHead    = "HEAD"
	RoleTeacher = "TEACHER"
	RoleSystem  = "SYSTEM"
)

// User is a reviewer account. TEACHER accounts are scoped to exactly one
// course; HEAD accounts are course-agnostic.
type User struct {
	UserID   uint       `gorm:"primaryKey;column:user_id" json:"user_id"`
	Name     string     `gorm:"column:name" json:"name"`
	Email    string     `gorm:"column:email;unique" json:"email"`
	Password string     `gorm:"column:password" json:"-"`
	Role     string     `gorm:"column:role" json:"role"`
	Course   *string    `gorm:"column:course" json:"course,omitempty"`

	// PushTokens holds a JSON array of Expo push tokens registered from the
	// reviewer dashboard app.
	PushTokens string `gorm:"column:push_tokens;default:[]" json:"-"`

	CreateAt *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (User) TableName() string { return "users" }

func (u *User) CourseName() string {
	if u.Course == nil {
		return ""
	}
	return *u.Course
}

// PushTokenList decodes the registered tokens. A malformed column yields an
// empty list.
func (u *User) PushTokenList() []string {
	if u.PushTokens == "" {
		return nil
	}
	var tokens []string
	if err := json.Unmarshal([]byte(u.PushTokens), &tokens); err != nil {
		return nil
	}
	return tokens
}

// AddPushToken registers a token for this user. Returns false when the token
// was already registered.
func (u *User) AddPushToken(token string) bool {
	tokens := u.PushTokenList()
	for _, t := range tokens {
		if t == token {
			return false
		}
	}
	encoded, err := json.Marshal(append(tokens, token))
	if err != nil {
		return false
	}
	u.PushTokens = string(encoded)
	return true
}
