package services

import (
	"log"
	"time"

	"fitness-club-backend/models"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// StartMaintenanceScheduler runs the periodic housekeeping jobs: streak
// resets for members who skipped a day, and expiry of finished challenges.
func StartMaintenanceScheduler(db *gorm.DB, challenges *ChallengeService) {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	// Hourly: zero the current streak of anyone whose last workout is more
	// than a full day behind. LongestStreak is untouched, so streak badges
	// already in reach stay in reach.
	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(func() {
			// A workout yesterday still keeps the streak alive; anything
			// before the start of yesterday breaks it.
			now := time.Now()
			cutoff := time.Date(now.Year(), now.Month(), now.Day()-1, 0, 0, 0, 0, now.Location())
			res := db.Model(&models.UserProgression{}).
				Where("current_streak > 0 AND (last_workout_at IS NULL OR last_workout_at < ?)", cutoff).
				Update("current_streak", 0)
			if res.Error != nil {
				log.Printf("[Scheduler] streak reset failed: %v", res.Error)
				return
			}
			if res.RowsAffected > 0 {
				log.Printf("✅ Streaks reset for %d members", res.RowsAffected)
			}
		}),
	)

	// Every 10 minutes: deactivate challenges past their window.
	_, _ = sched.NewJob(
		gocron.DurationJob(10*time.Minute),
		gocron.NewTask(func() {
			n, err := challenges.DeactivateExpired()
			if err != nil {
				log.Printf("[Scheduler] challenge expiry failed: %v", err)
				return
			}
			if n > 0 {
				log.Printf("✅ Deactivated %d expired challenges", n)
			}
		}),
	)
}
