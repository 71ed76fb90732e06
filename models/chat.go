package models

import "time"

// ChatMessage is a persisted chat line. Delivery happens over the websocket
// hub; this table is only the history.
type ChatMessage struct {
	ID       string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Room     string    `gorm:"index;not null" json:"room"`
	SenderID string    `gorm:"index;not null" json:"sender_id"`
	Body     string    `gorm:"type:text;not null" json:"body"`
	SentAt   time.Time `gorm:"index;autoCreateTime" json:"sent_at"`
}
