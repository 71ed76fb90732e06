package models

import "time"

type NotificationKind string

const (
	NotificationLevelUp       NotificationKind = "level_up"
	NotificationBadgeUnlocked NotificationKind = "badge_unlocked"
	NotificationSystem        NotificationKind = "system"
)

type NotificationPriority string

const (
	PriorityNormal NotificationPriority = "normal"
	PriorityHigh   NotificationPriority = "high"
)

// Notification is a user-facing message recorded by the notification service.
// Push delivery is best-effort and owned by the push worker, not the caller.
type Notification struct {
	ID       string               `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID   string               `gorm:"index;not null" json:"user_id"`
	Kind     NotificationKind     `gorm:"type:varchar(32);not null" json:"kind"`
	Title    string               `gorm:"not null" json:"title"`
	Body     string               `gorm:"type:text" json:"body"`
	Icon     string               `gorm:"size:16" json:"icon"`
	Priority NotificationPriority `gorm:"type:varchar(8);default:'normal'" json:"priority"`

	Read     bool       `gorm:"default:false;index" json:"read"`
	PushedAt *time.Time `json:"pushed_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
