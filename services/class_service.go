package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"fitness-club-backend/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

var (
	ErrClassFull      = errors.New("class is fully booked")
	ErrAlreadyBooked  = errors.New("already booked into this class")
	ErrBookingMissing = errors.New("booking not found")
)

type ClassService struct {
	DB          *gorm.DB
	store       ProgressionStore
	progression *ProgressionService
}

func NewClassService(db *gorm.DB, store ProgressionStore, progression *ProgressionService) *ClassService {
	return &ClassService{DB: db, store: store, progression: progression}
}

// CreateClass schedules a new class. The slug is derived from the name plus a
// short uniquifier so coaches can reuse class names across the week.
func (s *ClassService) CreateClass(coachID string, c *models.Class) (*models.Class, error) {
	c.ID = uuid.NewString()
	c.CoachID = coachID
	c.Slug = slug.Make(fmt.Sprintf("%s %s", c.Name, c.StartsAt.Format("jan-2-1504")))
	if c.Capacity < 1 {
		c.Capacity = 20
	}
	if err := s.DB.Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// Upcoming lists classes starting after now, soonest first.
func (s *ClassService) Upcoming(limit int) ([]models.Class, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}
	var classes []models.Class
	err := s.DB.Where("starts_at > ?", time.Now()).
		Order("starts_at ASC").
		Limit(limit).
		Find(&classes).Error
	return classes, err
}

// Book reserves a spot, enforcing capacity inside one transaction.
func (s *ClassService) Book(userID, classID string) (*models.ClassBooking, error) {
	var booking *models.ClassBooking
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var class models.Class
		if err := tx.Where("id = ?", classID).First(&class).Error; err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&models.ClassBooking{}).
			Where("class_id = ? AND user_id = ? AND status <> ?", classID, userID, models.BookingStatusCancelled).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyBooked
		}

		var booked int64
		if err := tx.Model(&models.ClassBooking{}).
			Where("class_id = ? AND status <> ?", classID, models.BookingStatusCancelled).
			Count(&booked).Error; err != nil {
			return err
		}
		if booked >= int64(class.Capacity) {
			return ErrClassFull
		}

		booking = &models.ClassBooking{
			ID:      uuid.NewString(),
			ClassID: classID,
			UserID:  userID,
			Status:  models.BookingStatusBooked,
		}
		return tx.Create(booking).Error
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}

// Cancel releases a booking.
func (s *ClassService) Cancel(userID, classID string) error {
	res := s.DB.Model(&models.ClassBooking{}).
		Where("class_id = ? AND user_id = ? AND status = ?", classID, userID, models.BookingStatusBooked).
		Update("status", models.BookingStatusCancelled)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrBookingMissing
	}
	return nil
}

// CompleteAttendance marks a booking attended (coach action), bumps the class
// counter, then records progression for the attendee. Attendance is committed
// before progression: a gamification hiccup never unmarks attendance.
func (s *ClassService) CompleteAttendance(classID, userID string) (*models.ProgressionResult, error) {
	now := time.Now()
	res := s.DB.Model(&models.ClassBooking{}).
		Where("class_id = ? AND user_id = ? AND status = ?", classID, userID, models.BookingStatusBooked).
		Updates(map[string]interface{}{"status": models.BookingStatusAttended, "attended_at": now})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrBookingMissing
	}

	if err := s.store.IncrementCounter(userID, "classes_completed", 1); err != nil {
		log.Printf("⚠️ class counter not updated for %s: %v", userID, err)
	}

	result, err := s.progression.RecordActivity(userID, ClassXP, "class")
	if err != nil {
		log.Printf("⚠️ progression not recorded for class %s (user %s): %v", classID, userID, err)
		return nil, nil
	}
	return result, nil
}
