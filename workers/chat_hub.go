package workers

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"fitness-club-backend/models"
	"fitness-club-backend/services"

	"github.com/gofiber/contrib/websocket"
)

// inboundMessage is what clients send over the socket.
type inboundMessage struct {
	Room string `json:"room"`
	Body string `json:"body"`
}

// outboundEvent wraps everything the hub pushes to clients.
type outboundEvent struct {
	Type    string              `json:"type"` // "message" | "presence"
	Message *models.ChatMessage `json:"message,omitempty"`
	Online  []string            `json:"online,omitempty"`
}

type hubClient struct {
	conn   *websocket.Conn
	userID string
	room   string
	send   chan []byte
}

// ChatHub fans chat messages and presence updates out to connected members.
// One hub per process; Run must be started before the websocket route is
// registered.
type ChatHub struct {
	chat       *services.ChatService
	register   chan *hubClient
	unregister chan *hubClient
	broadcast  chan broadcastItem
	clients    map[*hubClient]bool
}

type broadcastItem struct {
	room    string
	payload []byte
}

func NewChatHub(chat *services.ChatService) *ChatHub {
	return &ChatHub{
		chat:       chat,
		register:   make(chan *hubClient),
		unregister: make(chan *hubClient),
		broadcast:  make(chan broadcastItem, 64),
		clients:    make(map[*hubClient]bool),
	}
}

// Run owns the client set. It blocks until ctx is cancelled.
func (h *ChatHub) Run(ctx context.Context) {
	log.Println("💬 Chat hub running")
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				close(c.send)
			}
			return
		case c := <-h.register:
			h.clients[c] = true
			h.announcePresence(ctx)
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.announcePresence(ctx)
		case item := <-h.broadcast:
			for c := range h.clients {
				if c.room != item.room {
					continue
				}
				select {
				case c.send <- item.payload:
				default:
					// slow consumer, drop it
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

func (h *ChatHub) announcePresence(ctx context.Context) {
	online, err := h.chat.OnlineUsers(ctx)
	if err != nil {
		log.Printf("⚠️ presence lookup failed: %v", err)
		return
	}
	payload, _ := json.Marshal(outboundEvent{Type: "presence", Online: online})
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
		}
	}
}

// Handler is the websocket connection handler. WSAuthMiddleware has already
// attached user_id to the connection's locals.
func (h *ChatHub) Handler(conn *websocket.Conn) {
	userID, _ := conn.Locals("user_id").(string)
	room := conn.Query("room", "lobby")

	client := &hubClient{
		conn:   conn,
		userID: userID,
		room:   room,
		send:   make(chan []byte, 16),
	}

	ctx := context.Background()
	if err := h.chat.MarkOnline(ctx, userID); err != nil {
		log.Printf("⚠️ presence mark-online failed for %s: %v", userID, err)
	}
	h.register <- client

	defer func() {
		h.unregister <- client
		if err := h.chat.MarkOffline(ctx, userID); err != nil {
			log.Printf("⚠️ presence mark-offline failed for %s: %v", userID, err)
		}
		conn.Close()
	}()

	go client.writePump()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var in inboundMessage
		if err := json.Unmarshal(raw, &in); err != nil || in.Body == "" {
			continue
		}
		if in.Room == "" {
			in.Room = room
		}

		msg, err := h.chat.SaveMessage(in.Room, userID, in.Body)
		if err != nil {
			log.Printf("⚠️ chat message not saved (user %s): %v", userID, err)
			continue
		}
		payload, _ := json.Marshal(outboundEvent{Type: "message", Message: msg})
		h.broadcast <- broadcastItem{room: in.Room, payload: payload}
	}
}

func (c *hubClient) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case payload, ok := <-c.send:
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
