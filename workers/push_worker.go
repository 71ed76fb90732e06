package workers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"fitness-club-backend/models"
	"fitness-club-backend/utils"

	"gorm.io/gorm"
)

// PushClient delivers recorded notifications to an external push relay.
// Delivery is best-effort: a failed push leaves the notification unpushed and
// the next poll retries it.
type PushClient struct {
	RelayURL   string
	Token      string
	HTTPClient *http.Client
	DB         *gorm.DB
}

// NewPushClient returns nil when PUSH_RELAY_URL is unset — push delivery is
// optional and the backend runs fine without it.
func NewPushClient(db *gorm.DB) *PushClient {
	relayURL := os.Getenv("PUSH_RELAY_URL")
	if relayURL == "" {
		return nil
	}
	return &PushClient{
		RelayURL:   relayURL,
		Token:      os.Getenv("CLUB_SERVICE_TOKEN"),
		DB:         db,
		HTTPClient: utils.HTTPClient,
	}
}

type pushPayload struct {
	UserID   string `json:"user_id"`
	Kind     string `json:"kind"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	Icon     string `json:"icon"`
	Priority string `json:"priority"`
}

func (c *PushClient) push(ctx context.Context, n *models.Notification) error {
	payload, err := json.Marshal(pushPayload{
		UserID:   n.UserID,
		Kind:     string(n.Kind),
		Title:    n.Title,
		Body:     n.Body,
		Icon:     n.Icon,
		Priority: string(n.Priority),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.RelayURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("X-Service-Token", c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call push relay: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("push relay returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// PollNotifications periodically picks up unpushed notifications and hands
// them to the relay, stamping pushed_at on success.
func PollNotifications(ctx context.Context, client *PushClient, pollInterval time.Duration) {
	log.Println("🔔 Starting notification push worker…")
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Notification push worker stopped")
			return
		case <-ticker.C:
			var pending []models.Notification
			err := client.DB.
				Where("pushed_at IS NULL").
				Order("created_at ASC").
				Limit(50).
				Find(&pending).Error
			if err != nil {
				log.Printf("⚠️ push worker query failed: %v", err)
				continue
			}

			for i := range pending {
				n := &pending[i]
				if err := client.push(ctx, n); err != nil {
					log.Printf("⚠️ push failed for notification %s: %v", n.ID, err)
					continue
				}
				now := time.Now()
				if err := client.DB.Model(n).Update("pushed_at", now).Error; err != nil {
					log.Printf("⚠️ failed to stamp pushed_at on %s: %v", n.ID, err)
				}
			}
		}
	}
}
