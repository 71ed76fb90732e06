package services

import (
	"fmt"
	"log"

	"fitness-club-backend/models"

	"github.com/google/uuid"
)

// BadgeService evaluates the badge catalog against a user's counters and
// persists new unlocks. It is driven by ProgressionService and never calls
// back into it.
type BadgeService struct {
	store  ProgressionStore
	notify Notifier
}

func NewBadgeService(store ProgressionStore, notify Notifier) *BadgeService {
	return &BadgeService{store: store, notify: notify}
}

// Catalog returns a copy of the full badge catalog in declaration order.
func (s *BadgeService) Catalog() []models.BadgeDefinition {
	out := make([]models.BadgeDefinition, len(models.BadgeCatalog))
	copy(out, models.BadgeCatalog)
	return out
}

// EvaluateBadges scans the catalog against the user's current counters and
// returns the badges newly earned by this call, in catalog declaration order.
// Idempotent: already-earned ids are skipped, and the unique (user, badge)
// index turns a racing duplicate insert into a no-op — the notification only
// fires for the insert that actually created the row.
func (s *BadgeService) EvaluateBadges(userID string) ([]models.BadgeDefinition, error) {
	prog, err := s.store.Get(userID)
	if err != nil {
		return nil, err
	}
	earned, err := s.store.EarnedBadgeIDs(userID)
	if err != nil {
		return nil, err
	}

	var unlocked []models.BadgeDefinition
	for _, def := range models.BadgeCatalog {
		if earned[def.ID] {
			continue
		}
		if !meetsThreshold(prog, def) {
			continue
		}

		created, err := s.store.InsertBadge(&models.UserBadge{
			ID:      uuid.NewString(),
			UserID:  userID,
			BadgeID: def.ID,
		})
		if err != nil {
			return unlocked, err
		}
		if !created {
			continue // lost the race to a concurrent evaluation, not ours to announce
		}

		unlocked = append(unlocked, def)
		if nerr := s.notify.Notify(userID,
			models.NotificationBadgeUnlocked,
			fmt.Sprintf("Badge unlocked: %s", def.DisplayName),
			fmt.Sprintf("You earned the %s badge!", def.DisplayName),
			def.Icon,
			models.PriorityNormal,
		); nerr != nil {
			log.Printf("⚠️ badge notification failed for %s (%s): %v", userID, def.ID, nerr)
		}
		log.Printf("🎖️ Badge awarded: %s → %s", def.ID, userID)
	}
	return unlocked, nil
}

// GrantSpecialBadge manually awards a special-dimension badge. This is the
// only unlock path for the special dimension.
func (s *BadgeService) GrantSpecialBadge(userID, badgeID string) (*models.BadgeDefinition, error) {
	def, ok := models.BadgeByID(badgeID)
	if !ok {
		return nil, fmt.Errorf("unknown badge id %q", badgeID)
	}
	if def.Dimension != models.DimensionSpecial {
		return nil, fmt.Errorf("badge %q is auto-awarded, not grantable", badgeID)
	}

	created, err := s.store.InsertBadge(&models.UserBadge{
		ID:      uuid.NewString(),
		UserID:  userID,
		BadgeID: def.ID,
	})
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, nil // already owned
	}

	if nerr := s.notify.Notify(userID,
		models.NotificationBadgeUnlocked,
		fmt.Sprintf("Badge unlocked: %s", def.DisplayName),
		fmt.Sprintf("You earned the %s badge!", def.DisplayName),
		def.Icon,
		models.PriorityNormal,
	); nerr != nil {
		log.Printf("⚠️ badge notification failed for %s (%s): %v", userID, def.ID, nerr)
	}
	return &def, nil
}

// ListUserBadges joins earned instances with their catalog definitions.
func (s *BadgeService) ListUserBadges(userID string) ([]models.UserBadge, error) {
	return s.store.ListBadges(userID)
}

// meetsThreshold is the dimension predicate table. One arm per dimension;
// special is intentionally never satisfied here (manual grants only).
// Unknown dimensions cannot reach this point: the catalog is validated at
// startup.
func meetsThreshold(prog *models.UserProgression, def models.BadgeDefinition) bool {
	switch def.Dimension {
	case models.DimensionWorkout:
		return prog.TotalWorkouts >= def.Threshold
	case models.DimensionStreak:
		return int64(prog.LongestStreak) >= def.Threshold
	case models.DimensionXP:
		return prog.XP >= def.Threshold
	case models.DimensionLevel:
		return int64(prog.Level) >= def.Threshold
	case models.DimensionChallenge:
		return prog.ChallengesCompleted >= def.Threshold
	case models.DimensionClass:
		return prog.ClassesCompleted >= def.Threshold
	case models.DimensionSocial:
		return prog.SocialInteractions >= def.Threshold
	case models.DimensionSpecial:
		return false
	}
	return false
}
