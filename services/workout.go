package services

import (
	"fmt"
	"log"
	"time"

	"fitness-club-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// XP awarded per completed activity. Challenges carry their own reward.
const (
	WorkoutXP = 50
	ClassXP   = 30
	SocialXP  = 5
)

type WorkoutService struct {
	DB          *gorm.DB
	store       ProgressionStore
	progression *ProgressionService
}

func NewWorkoutService(db *gorm.DB, store ProgressionStore, progression *ProgressionService) *WorkoutService {
	return &WorkoutService{DB: db, store: store, progression: progression}
}

// LogWorkout persists the workout, bumps the workout counter and streaks,
// then records progression. The workout commit comes first: progression is
// best-effort and its failure only gets logged, never unwinds the save.
func (s *WorkoutService) LogWorkout(userID string, w *models.Workout) (*models.Workout, *models.ProgressionResult, error) {
	w.ID = uuid.NewString()
	w.UserID = userID
	if w.PerformedAt.IsZero() {
		w.PerformedAt = time.Now()
	}
	if err := s.DB.Create(w).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to save workout: %w", err)
	}

	if err := s.bumpCounters(userID, w.PerformedAt); err != nil {
		log.Printf("⚠️ workout counters not updated for %s: %v", userID, err)
	}

	result, err := s.progression.RecordActivity(userID, WorkoutXP, "workout")
	if err != nil {
		log.Printf("⚠️ progression not recorded for workout %s (user %s): %v", w.ID, userID, err)
		return w, nil, nil
	}
	return w, result, nil
}

func (s *WorkoutService) bumpCounters(userID string, performedAt time.Time) error {
	prog, err := s.store.Get(userID)
	if err != nil {
		return err
	}

	if err := s.store.IncrementCounter(userID, "total_workouts", 1); err != nil {
		return err
	}

	current, longest := nextStreak(prog.LastWorkoutAt, performedAt, prog.CurrentStreak, prog.LongestStreak)
	return s.store.UpdateStreak(userID, current, longest, performedAt)
}

// nextStreak advances the day-streak counters for a workout at now.
// Same calendar day keeps the streak, the following day extends it, any
// larger gap restarts at 1. LongestStreak never decreases.
func nextStreak(last *time.Time, now time.Time, current, longest int) (int, int) {
	switch {
	case last == nil || current == 0:
		current = 1
	case sameDay(*last, now):
		// second workout today, streak unchanged
	case sameDay(last.AddDate(0, 0, 1), now):
		current++
	default:
		current = 1
	}
	if current > longest {
		longest = current
	}
	return current, longest
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// History returns the user's workouts in the last N days, newest first.
func (s *WorkoutService) History(userID string, days int) ([]models.Workout, error) {
	if days < 1 || days > 365 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)
	var workouts []models.Workout
	err := s.DB.Where("user_id = ? AND performed_at >= ?", userID, since).
		Order("performed_at DESC").
		Find(&workouts).Error
	return workouts, err
}
