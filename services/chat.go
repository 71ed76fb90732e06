package services

import (
	"context"
	"fmt"
	"time"

	"fitness-club-backend/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	presenceKey    = "club:online"
	lastSeenKeyFmt = "club:lastseen:%s"
)

// ChatService persists chat history and tracks member presence in Redis.
// Real-time delivery is the hub's job (workers.ChatHub); the service is what
// both the hub and the history endpoint talk to.
type ChatService struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewChatService(db *gorm.DB, rdb *redis.Client) *ChatService {
	return &ChatService{DB: db, Redis: rdb}
}

// SaveMessage persists one chat line and returns it with its id/timestamp.
func (s *ChatService) SaveMessage(room, senderID, body string) (*models.ChatMessage, error) {
	msg := &models.ChatMessage{
		ID:       uuid.NewString(),
		Room:     room,
		SenderID: senderID,
		Body:     body,
		SentAt:   time.Now(),
	}
	if err := s.DB.Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}

// History returns the most recent messages in a room, oldest first.
func (s *ChatService) History(room string, limit int) ([]models.ChatMessage, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	var messages []models.ChatMessage
	err := s.DB.Where("room = ?", room).
		Order("sent_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	// reverse into chronological order
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// MarkOnline adds the user to the presence set and stamps last-seen.
func (s *ChatService) MarkOnline(ctx context.Context, userID string) error {
	if err := s.Redis.SAdd(ctx, presenceKey, userID).Err(); err != nil {
		return err
	}
	return s.Redis.Set(ctx, fmt.Sprintf(lastSeenKeyFmt, userID), time.Now().Format(time.RFC3339), 0).Err()
}

// MarkOffline removes the user from the presence set.
func (s *ChatService) MarkOffline(ctx context.Context, userID string) error {
	if err := s.Redis.SRem(ctx, presenceKey, userID).Err(); err != nil {
		return err
	}
	return s.Redis.Set(ctx, fmt.Sprintf(lastSeenKeyFmt, userID), time.Now().Format(time.RFC3339), 0).Err()
}

// OnlineUsers returns the ids of currently connected members.
func (s *ChatService) OnlineUsers(ctx context.Context) ([]string, error) {
	return s.Redis.SMembers(ctx, presenceKey).Result()
}
