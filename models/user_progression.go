package models

import (
	"time"

	"gorm.io/gorm"
)

// BaseXPPerLevel is the flat XP cost of each level.
// Level is always derived: floor(xp / 100) + 1. It is stored alongside XP
// for query convenience but never updated independently of it.
const BaseXPPerLevel = 100

// LevelForXP derives the level for a given XP total.
func LevelForXP(xp int64) int {
	if xp < 0 {
		xp = 0
	}
	return int(xp/BaseXPPerLevel) + 1
}

// UserProgression tracks gamified progression for each member (denormalized for performance).
// Mutated only through ProgressionService (xp/level) and the activity services
// (counters); the Version column is the optimistic-concurrency marker for both.
type UserProgression struct {
	ID     string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID string `gorm:"uniqueIndex;not null" json:"user_id"`

	// Core progression
	XP    int64 `json:"xp" gorm:"default:0"`
	Level int   `json:"level" gorm:"default:1"`

	// Activity counters, incremented by their owning services before
	// progression is recorded
	TotalWorkouts       int64 `json:"total_workouts" gorm:"default:0"`
	ChallengesCompleted int64 `json:"challenges_completed" gorm:"default:0"`
	ClassesCompleted    int64 `json:"classes_completed" gorm:"default:0"`
	SocialInteractions  int64 `json:"social_interactions" gorm:"default:0"`

	// Streaks, maintained by WorkoutService; LongestStreak >= CurrentStreak
	CurrentStreak int        `json:"current_streak" gorm:"default:0"`
	LongestStreak int        `json:"longest_streak" gorm:"default:0"`
	LastWorkoutAt *time.Time `json:"last_workout_at,omitempty"`

	// Optimistic concurrency marker; bumped on every versioned write
	Version int64 `json:"-" gorm:"default:0"`

	LastLevelUpAt *time.Time `json:"last_level_up_at,omitempty"`

	Timestamps
}

// ProgressionResult describes what a single recorded activity changed.
// Transient — returned to the caller, never persisted.
type ProgressionResult struct {
	XP             int64             `json:"xp"`
	Level          int               `json:"level"`
	LeveledUp      bool              `json:"leveled_up"`
	UnlockedBadges []BadgeDefinition `json:"unlocked_badges"`
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
