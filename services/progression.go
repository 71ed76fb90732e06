package services

import (
	"errors"
	"fmt"
	"log"

	"fitness-club-backend/models"

	"github.com/google/uuid"
)

var (
	ErrProgressionNotFound = errors.New("progression record not found")
	// ErrConcurrencyConflict surfaces after the bounded retry budget is
	// exhausted. Transient: the caller's activity is already committed and
	// must not be undone because of it.
	ErrConcurrencyConflict = errors.New("progression update conflict")
)

// maxApplyAttempts bounds the optimistic-concurrency retry loop in applyXP.
const maxApplyAttempts = 5

// Notifier records a user-facing message. NotificationService is the
// production implementation; tests substitute a recorder.
type Notifier interface {
	Notify(userID string, kind models.NotificationKind, title, body, icon string, priority models.NotificationPriority) error
}

// ProgressionService is the single entry point activity services use to turn
// completed activity into XP, levels and badges. applyXP and badge evaluation
// are internal sequencing details; exposing them separately would invite
// double-application from callers retrying the composite.
type ProgressionService struct {
	store  ProgressionStore
	badges *BadgeService
	notify Notifier
}

func NewProgressionService(store ProgressionStore, badges *BadgeService, notify Notifier) *ProgressionService {
	return &ProgressionService{store: store, badges: badges, notify: notify}
}

// EnsureProgressionRecord creates the zeroed counter row for a new member (idempotent).
func (s *ProgressionService) EnsureProgressionRecord(userID string) (*models.UserProgression, error) {
	prog, err := s.store.Get(userID)
	if err == nil {
		return prog, nil
	}
	if !errors.Is(err, ErrProgressionNotFound) {
		return nil, err
	}
	prog = &models.UserProgression{
		ID:     uuid.NewString(),
		UserID: userID,
		XP:     0,
		Level:  1,
	}
	if err := s.store.Create(prog); err != nil {
		return nil, err
	}
	return prog, nil
}

// GetProgression returns the current counter bundle for display.
func (s *ProgressionService) GetProgression(userID string) (*models.UserProgression, error) {
	return s.store.Get(userID)
}

// RecordActivity applies an XP delta for a completed activity, then runs one
// badge evaluation pass against the post-XP snapshot. Badge evaluation is
// best-effort: a storage error there is logged and swallowed so gamification
// bookkeeping never fails the member's already-committed activity.
//
// Exactly one evaluation pass happens per call; nothing in the notification
// path feeds back into XP or badges, so recursion is structurally impossible.
func (s *ProgressionService) RecordActivity(userID string, amount int64, reason string) (*models.ProgressionResult, error) {
	xp, level, leveledUp, err := s.applyXP(userID, amount, reason)
	if err != nil {
		return nil, err
	}

	unlocked, err := s.badges.EvaluateBadges(userID)
	if err != nil {
		log.Printf("⚠️ badge evaluation failed for %s (reason: %s): %v", userID, reason, err)
		unlocked = nil
	}

	return &models.ProgressionResult{
		XP:             xp,
		Level:          level,
		LeveledUp:      leveledUp,
		UnlockedBadges: unlocked,
	}, nil
}

// applyXP adds amount to the user's XP (clamped at zero) and re-derives the
// level from the new total. The write is conditional on the version marker
// read with the snapshot; on a collision the whole read-compute-write cycle
// retries against fresh state. A plain fetch→add→save here would silently
// drop one of two near-simultaneous updates.
func (s *ProgressionService) applyXP(userID string, amount int64, reason string) (int64, int, bool, error) {
	for attempt := 0; attempt < maxApplyAttempts; attempt++ {
		prog, err := s.store.Get(userID)
		if err != nil {
			return 0, 0, false, err
		}

		oldXP := prog.XP
		newXP := oldXP + amount
		if newXP < 0 {
			newXP = 0
		}
		newLevel := models.LevelForXP(newXP)
		leveledUp := newLevel > models.LevelForXP(oldXP)

		ok, err := s.store.UpdateXPVersioned(userID, newXP, newLevel, leveledUp, prog.Version)
		if err != nil {
			return 0, 0, false, err
		}
		if !ok {
			continue // version moved under us, retry from a fresh read
		}

		if leveledUp {
			if nerr := s.notify.Notify(userID,
				models.NotificationLevelUp,
				fmt.Sprintf("Level %d reached!", newLevel),
				fmt.Sprintf("You earned %d XP (%s) and reached level %d. Keep it up!", amount, reason, newLevel),
				"🎉",
				models.PriorityNormal,
			); nerr != nil {
				log.Printf("⚠️ level-up notification failed for %s: %v", userID, nerr)
			}
		}

		log.Printf("🏅 XP applied: %s → xp=%d, lvl=%d (Δ%d, reason: %s)", userID, newXP, newLevel, amount, reason)
		return newXP, newLevel, leveledUp, nil
	}
	return 0, 0, false, ErrConcurrencyConflict
}

// GetBadgeCatalog exposes the full catalog read-only for UI display.
func (s *ProgressionService) GetBadgeCatalog() []models.BadgeDefinition {
	return s.badges.Catalog()
}
