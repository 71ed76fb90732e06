package models

import "time"

// DefaultChallengeRewardXP applies when a challenge doesn't set its own reward.
const DefaultChallengeRewardXP = 100

// Challenge is a time-boxed club challenge (e.g. "run 50km in February").
type Challenge struct {
	ID          string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	RewardXP    int64     `gorm:"default:100" json:"reward_xp"`
	StartsAt    time.Time `gorm:"not null" json:"starts_at"`
	EndsAt      time.Time `gorm:"index;not null" json:"ends_at"`
	Active      bool      `gorm:"default:true;index" json:"active"`

	Timestamps
}

// ChallengeEntry marks a member's completion of a challenge. Unique per
// (challenge, user) so a challenge pays out at most once per member.
type ChallengeEntry struct {
	ID          string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ChallengeID string    `gorm:"uniqueIndex:idx_challenge_user;not null" json:"challenge_id"`
	UserID      string    `gorm:"uniqueIndex:idx_challenge_user;not null" json:"user_id"`
	CompletedAt time.Time `gorm:"autoCreateTime" json:"completed_at"`
}
