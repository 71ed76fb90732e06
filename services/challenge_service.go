package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"fitness-club-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrChallengeInactive  = errors.New("challenge is not active")
	ErrChallengeCompleted = errors.New("challenge already completed")
)

type ChallengeService struct {
	DB          *gorm.DB
	store       ProgressionStore
	progression *ProgressionService
}

func NewChallengeService(db *gorm.DB, store ProgressionStore, progression *ProgressionService) *ChallengeService {
	return &ChallengeService{DB: db, store: store, progression: progression}
}

func (s *ChallengeService) CreateChallenge(c *models.Challenge) (*models.Challenge, error) {
	c.ID = uuid.NewString()
	if c.RewardXP < 1 {
		c.RewardXP = models.DefaultChallengeRewardXP
	}
	c.Active = true
	if err := s.DB.Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// ActiveChallenges lists challenges open right now.
func (s *ChallengeService) ActiveChallenges() ([]models.Challenge, error) {
	now := time.Now()
	var challenges []models.Challenge
	err := s.DB.Where("active = ? AND starts_at <= ? AND ends_at >= ?", true, now, now).
		Order("ends_at ASC").
		Find(&challenges).Error
	return challenges, err
}

// CompleteChallenge records a member's completion. The entry insert is
// conflict-guarded so a double submit pays out once; the counter bump and XP
// award only run for the insert that landed.
func (s *ChallengeService) CompleteChallenge(userID, challengeID string) (*models.ProgressionResult, error) {
	var challenge models.Challenge
	if err := s.DB.Where("id = ?", challengeID).First(&challenge).Error; err != nil {
		return nil, fmt.Errorf("challenge not found: %w", err)
	}
	now := time.Now()
	if !challenge.Active || now.Before(challenge.StartsAt) || now.After(challenge.EndsAt) {
		return nil, ErrChallengeInactive
	}

	entry := models.ChallengeEntry{
		ID:          uuid.NewString(),
		ChallengeID: challengeID,
		UserID:      userID,
	}
	res := s.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrChallengeCompleted
	}

	if err := s.store.IncrementCounter(userID, "challenges_completed", 1); err != nil {
		log.Printf("⚠️ challenge counter not updated for %s: %v", userID, err)
	}

	result, err := s.progression.RecordActivity(userID, challenge.RewardXP, "challenge:"+challenge.ID)
	if err != nil {
		log.Printf("⚠️ progression not recorded for challenge %s (user %s): %v", challengeID, userID, err)
		return nil, nil
	}
	return result, nil
}

// DeactivateExpired flips the active flag off for challenges past their
// window. Called by the maintenance scheduler.
func (s *ChallengeService) DeactivateExpired() (int64, error) {
	res := s.DB.Model(&models.Challenge{}).
		Where("active = ? AND ends_at < ?", true, time.Now()).
		Update("active", false)
	return res.RowsAffected, res.Error
}
