package models

import "time"

// Class is a scheduled group session led by a coach.
type Class struct {
	ID          string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CoachID     string    `gorm:"index;not null" json:"coach_id"`
	Capacity    int       `gorm:"default:20" json:"capacity"`
	StartsAt    time.Time `gorm:"index;not null" json:"starts_at"`
	DurationMin int       `gorm:"default:60" json:"duration_min"`

	Timestamps
}

type BookingStatus string

const (
	BookingStatusBooked    BookingStatus = "booked"
	BookingStatusAttended  BookingStatus = "attended"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// ClassBooking ties a member to a class. One booking per user per class.
type ClassBooking struct {
	ID         string        `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ClassID    string        `gorm:"uniqueIndex:idx_class_user;not null" json:"class_id"`
	UserID     string        `gorm:"uniqueIndex:idx_class_user;not null" json:"user_id"`
	Status     BookingStatus `gorm:"type:varchar(16);default:'booked'" json:"status"`
	AttendedAt *time.Time    `json:"attended_at,omitempty"`

	Timestamps
}
