package models

import (
	"fmt"
	"time"
)

// BadgeDimension is the activity counter a badge threshold is keyed to.
// Closed set — ValidateBadgeCatalog rejects anything else at startup.
type BadgeDimension string

const (
	DimensionWorkout   BadgeDimension = "workout"
	DimensionStreak    BadgeDimension = "streak"
	DimensionXP        BadgeDimension = "xp"
	DimensionLevel     BadgeDimension = "level"
	DimensionChallenge BadgeDimension = "challenge"
	DimensionClass     BadgeDimension = "class"
	DimensionSocial    BadgeDimension = "social"
	// DimensionSpecial badges are never auto-unlocked by the evaluator.
	// They exist in the catalog for UI display and are only granted
	// manually through the admin endpoint.
	DimensionSpecial BadgeDimension = "special"
)

// BadgeTier is a cosmetic difficulty classification; it never affects unlock logic.
type BadgeTier string

const (
	TierBronze   BadgeTier = "bronze"
	TierSilver   BadgeTier = "silver"
	TierGold     BadgeTier = "gold"
	TierPlatinum BadgeTier = "platinum"
)

// BadgeDefinition is one catalog entry. The catalog is static, process-wide
// and immutable at runtime; there is no mutation path after startup.
type BadgeDefinition struct {
	ID          string         `json:"id"`
	DisplayName string         `json:"display_name"`
	Icon        string         `json:"icon"`
	Dimension   BadgeDimension `json:"dimension"`
	Threshold   int64          `json:"threshold"`
	Tier        BadgeTier      `json:"tier"`
}

// UserBadge is an awarded instance. The composite unique index keeps a badge
// one-time-earnable even when two evaluations race.
type UserBadge struct {
	ID        string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID    string    `gorm:"uniqueIndex:idx_user_badge;not null" json:"user_id"`
	BadgeID   string    `gorm:"uniqueIndex:idx_user_badge;not null" json:"badge_id"`
	AwardedAt time.Time `gorm:"autoCreateTime" json:"awarded_at"`
}

// BadgeCatalog lists every badge the club awards. Declaration order is the
// evaluation and presentation order; tests assert against it.
var BadgeCatalog = []BadgeDefinition{
	// Workouts
	{ID: "first_workout", DisplayName: "First Workout", Icon: "💪", Dimension: DimensionWorkout, Threshold: 1, Tier: TierBronze},
	{ID: "workout_10", DisplayName: "Regular", Icon: "🏋️", Dimension: DimensionWorkout, Threshold: 10, Tier: TierBronze},
	{ID: "workout_50", DisplayName: "Gym Rat", Icon: "🔥", Dimension: DimensionWorkout, Threshold: 50, Tier: TierSilver},
	{ID: "workout_100", DisplayName: "Century Club", Icon: "🏆", Dimension: DimensionWorkout, Threshold: 100, Tier: TierGold},
	{ID: "workout_250", DisplayName: "Iron Addict", Icon: "⚙️", Dimension: DimensionWorkout, Threshold: 250, Tier: TierPlatinum},

	// Streaks (keyed to longest streak, in days)
	{ID: "streak_3", DisplayName: "Warming Up", Icon: "✨", Dimension: DimensionStreak, Threshold: 3, Tier: TierBronze},
	{ID: "streak_7", DisplayName: "One Week Strong", Icon: "📅", Dimension: DimensionStreak, Threshold: 7, Tier: TierSilver},
	{ID: "streak_30", DisplayName: "Unstoppable", Icon: "🚀", Dimension: DimensionStreak, Threshold: 30, Tier: TierGold},
	{ID: "streak_100", DisplayName: "Machine", Icon: "🤖", Dimension: DimensionStreak, Threshold: 100, Tier: TierPlatinum},

	// XP totals
	{ID: "xp_100", DisplayName: "Getting Started", Icon: "⭐", Dimension: DimensionXP, Threshold: 100, Tier: TierBronze},
	{ID: "xp_1000", DisplayName: "Point Collector", Icon: "🌟", Dimension: DimensionXP, Threshold: 1000, Tier: TierSilver},
	{ID: "xp_5000", DisplayName: "XP Hoarder", Icon: "💫", Dimension: DimensionXP, Threshold: 5000, Tier: TierGold},
	{ID: "xp_10000", DisplayName: "Living Legend", Icon: "🌠", Dimension: DimensionXP, Threshold: 10000, Tier: TierPlatinum},

	// Levels
	{ID: "level_5", DisplayName: "Level 5", Icon: "🥉", Dimension: DimensionLevel, Threshold: 5, Tier: TierBronze},
	{ID: "level_10", DisplayName: "Level 10", Icon: "🥈", Dimension: DimensionLevel, Threshold: 10, Tier: TierSilver},
	{ID: "level_25", DisplayName: "Level 25", Icon: "🥇", Dimension: DimensionLevel, Threshold: 25, Tier: TierGold},
	{ID: "level_50", DisplayName: "Level 50", Icon: "👑", Dimension: DimensionLevel, Threshold: 50, Tier: TierPlatinum},

	// Challenges
	{ID: "first_challenge", DisplayName: "Challenger", Icon: "🎯", Dimension: DimensionChallenge, Threshold: 1, Tier: TierBronze},
	{ID: "challenge_10", DisplayName: "Competitor", Icon: "⚔️", Dimension: DimensionChallenge, Threshold: 10, Tier: TierSilver},
	{ID: "challenge_25", DisplayName: "Conqueror", Icon: "🛡️", Dimension: DimensionChallenge, Threshold: 25, Tier: TierGold},

	// Classes
	{ID: "first_class", DisplayName: "Class Act", Icon: "🧘", Dimension: DimensionClass, Threshold: 1, Tier: TierBronze},
	{ID: "class_20", DisplayName: "Team Player", Icon: "🤝", Dimension: DimensionClass, Threshold: 20, Tier: TierSilver},
	{ID: "class_50", DisplayName: "Studio Regular", Icon: "🎓", Dimension: DimensionClass, Threshold: 50, Tier: TierGold},

	// Social
	{ID: "social_10", DisplayName: "Friendly Face", Icon: "😊", Dimension: DimensionSocial, Threshold: 10, Tier: TierBronze},
	{ID: "social_100", DisplayName: "Community Pillar", Icon: "🏛️", Dimension: DimensionSocial, Threshold: 100, Tier: TierGold},

	// Special — manual grant only, no automatic unlock rule
	{ID: "early_bird", DisplayName: "Early Bird", Icon: "🌅", Dimension: DimensionSpecial, Threshold: 1, Tier: TierSilver},
	{ID: "weekend_warrior", DisplayName: "Weekend Warrior", Icon: "🗓️", Dimension: DimensionSpecial, Threshold: 1, Tier: TierSilver},
}

var knownDimensions = map[BadgeDimension]bool{
	DimensionWorkout:   true,
	DimensionStreak:    true,
	DimensionXP:        true,
	DimensionLevel:     true,
	DimensionChallenge: true,
	DimensionClass:     true,
	DimensionSocial:    true,
	DimensionSpecial:   true,
}

// ValidateBadgeCatalog checks catalog integrity. A bad entry is a programming
// error: main fails fast on it at startup instead of skipping badges per call.
func ValidateBadgeCatalog() error {
	seen := make(map[string]bool, len(BadgeCatalog))
	for i, def := range BadgeCatalog {
		if def.ID == "" {
			return fmt.Errorf("badge catalog entry %d has empty id", i)
		}
		if seen[def.ID] {
			return fmt.Errorf("duplicate badge id %q in catalog", def.ID)
		}
		seen[def.ID] = true
		if !knownDimensions[def.Dimension] {
			return fmt.Errorf("badge %q references unknown dimension %q", def.ID, def.Dimension)
		}
		if def.Threshold < 1 {
			return fmt.Errorf("badge %q has non-positive threshold %d", def.ID, def.Threshold)
		}
		if def.DisplayName == "" {
			return fmt.Errorf("badge %q has empty display name", def.ID)
		}
	}
	return nil
}

// BadgeByID looks a definition up in the catalog; ok is false for unknown ids.
func BadgeByID(id string) (BadgeDefinition, bool) {
	for _, def := range BadgeCatalog {
		if def.ID == id {
			return def, true
		}
	}
	return BadgeDefinition{}, false
}
