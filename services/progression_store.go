package services

import (
	"errors"
	"time"

	"fitness-club-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProgressionStore is the per-user counter bundle behind the progression
// engine. Exactly one write discipline applies to the xp/level pair: a
// conditional update on the version column. Counter columns are adjusted with
// database-side increment expressions so they never clash with it.
type ProgressionStore interface {
	Get(userID string) (*models.UserProgression, error)
	Create(prog *models.UserProgression) error
	// UpdateXPVersioned writes xp/level iff the row still carries
	// expectedVersion; reports whether the write landed.
	UpdateXPVersioned(userID string, newXP int64, newLevel int, leveledUp bool, expectedVersion int64) (bool, error)
	// IncrementCounter applies a database-side `column = column + delta`.
	IncrementCounter(userID, column string, delta int64) error
	UpdateStreak(userID string, current, longest int, workoutAt time.Time) error
	EarnedBadgeIDs(userID string) (map[string]bool, error)
	// InsertBadge inserts unless (user, badge) already exists; reports
	// whether a row was actually created.
	InsertBadge(badge *models.UserBadge) (bool, error)
	ListBadges(userID string) ([]models.UserBadge, error)
}

// GormProgressionStore is the production store on top of Postgres.
type GormProgressionStore struct {
	DB *gorm.DB
}

func NewGormProgressionStore(db *gorm.DB) *GormProgressionStore {
	return &GormProgressionStore{DB: db}
}

func (s *GormProgressionStore) Get(userID string) (*models.UserProgression, error) {
	var prog models.UserProgression
	if err := s.DB.Where("user_id = ?", userID).First(&prog).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProgressionNotFound
		}
		return nil, err
	}
	return &prog, nil
}

func (s *GormProgressionStore) Create(prog *models.UserProgression) error {
	return s.DB.Create(prog).Error
}

func (s *GormProgressionStore) UpdateXPVersioned(userID string, newXP int64, newLevel int, leveledUp bool, expectedVersion int64) (bool, error) {
	updates := map[string]interface{}{
		"xp":      newXP,
		"level":   newLevel,
		"version": expectedVersion + 1,
	}
	if leveledUp {
		updates["last_level_up_at"] = time.Now()
	}
	res := s.DB.Model(&models.UserProgression{}).
		Where("user_id = ? AND version = ?", userID, expectedVersion).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *GormProgressionStore) IncrementCounter(userID, column string, delta int64) error {
	res := s.DB.Model(&models.UserProgression{}).
		Where("user_id = ?", userID).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProgressionNotFound
	}
	return nil
}

func (s *GormProgressionStore) UpdateStreak(userID string, current, longest int, workoutAt time.Time) error {
	res := s.DB.Model(&models.UserProgression{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"current_streak":  current,
			"longest_streak":  longest,
			"last_workout_at": workoutAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProgressionNotFound
	}
	return nil
}

func (s *GormProgressionStore) EarnedBadgeIDs(userID string) (map[string]bool, error) {
	var ids []string
	if err := s.DB.Model(&models.UserBadge{}).
		Where("user_id = ?", userID).
		Pluck("badge_id", &ids).Error; err != nil {
		return nil, err
	}
	earned := make(map[string]bool, len(ids))
	for _, id := range ids {
		earned[id] = true
	}
	return earned, nil
}

func (s *GormProgressionStore) InsertBadge(badge *models.UserBadge) (bool, error) {
	res := s.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(badge)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *GormProgressionStore) ListBadges(userID string) ([]models.UserBadge, error) {
	var badges []models.UserBadge
	err := s.DB.Where("user_id = ?", userID).
		Order("awarded_at ASC").
		Find(&badges).Error
	return badges, err
}
