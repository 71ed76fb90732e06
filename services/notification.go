package services

import (
	"errors"

	"fitness-club-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationService records user-facing messages. It owns persistence only;
// push delivery is handled asynchronously by workers.PushWorker, so a slow or
// dead push relay never slows down progression.
type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

// Notify persists a notification addressed to userID.
func (s *NotificationService) Notify(userID string, kind models.NotificationKind, title, body, icon string, priority models.NotificationPriority) error {
	n := models.Notification{
		ID:       uuid.NewString(),
		UserID:   userID,
		Kind:     kind,
		Title:    title,
		Body:     body,
		Icon:     icon,
		Priority: priority,
	}
	return s.DB.Create(&n).Error
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(userID string, unreadOnly bool, limit int) ([]models.Notification, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}
	q := s.DB.Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("read = ?", false)
	}
	var notifications []models.Notification
	err := q.Order("created_at DESC").Limit(limit).Find(&notifications).Error
	return notifications, err
}

// MarkRead flags a single notification as read, scoped to the owner.
func (s *NotificationService) MarkRead(userID, notificationID string) error {
	res := s.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("notification not found")
	}
	return nil
}

// MarkAllRead flags every unread notification for the user.
func (s *NotificationService) MarkAllRead(userID string) error {
	return s.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true).Error
}
