package models

import "time"

// Workout is a single logged session. The record is committed before
// progression is recorded for it; progression failure never rolls it back.
type Workout struct {
	ID          string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID      string    `gorm:"index;not null" json:"user_id"`
	Type        string    `gorm:"not null" json:"type"` // e.g. strength, cardio, mobility
	DurationMin int       `json:"duration_min"`
	Calories    int       `json:"calories"`
	Notes       string    `gorm:"type:text" json:"notes,omitempty"`
	PerformedAt time.Time `gorm:"index;not null" json:"performed_at"`

	Timestamps
}
