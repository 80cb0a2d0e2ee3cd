package websocket

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/perkvault/rewards_backend/internal/core/domain"
	portssvc "github.com/perkvault/rewards_backend/internal/core/ports/services"
	"github.com/perkvault/rewards_backend/internal/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins; the token check below is the real gate
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Event is the wire envelope pushed to dashboard clients.
type Event struct {
	Type    string    `json:"type"`
	Payload any       `json:"payload"`
	Time    time.Time `json:"time"`
}

// Client represents a single connected WebSocket client
type Client struct {
	Hub  *Hub
	Conn *websocket.Conn
	Send chan []byte
}

// Hub maintains the set of active clients and broadcasts ledger events
// (purchase lifecycle, reward claims) to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	logger     *slog.Logger
	mu         sync.Mutex
}

// Ensure Hub implements the portssvc.EventBroadcaster interface
var _ portssvc.EventBroadcaster = (*Hub)(nil)

// NewHub initializes a new WS Hub instance
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		logger:     logger,
	}
}

// BroadcastEvent encodes an event envelope and queues it for all clients.
// Services call this after their transaction commits.
func (h *Hub) BroadcastEvent(eventType string, payload any) {
	msg, err := json.Marshal(Event{Type: eventType, Payload: payload, Time: time.Now().UTC()})
	if err != nil {
		h.logger.Error("Failed to encode websocket event", slog.String("event", eventType), slog.String("error", err.Error()))
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		h.logger.Warn("Websocket broadcast queue full, dropping event", slog.String("event", eventType))
	}
}

// Run starts the core dispatch loop for WebSocket events
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Info("Websocket client connected")
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.logger.Info("Websocket client disconnected")
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// writePump handles writing messages from the Hub to the WebSocket connection
func (c *Client) writePump() {
	defer func() {
		_ = c.Conn.Close()
	}()
	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump keeps the connection alive and unregisters on close.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		_ = c.Conn.Close()
	}()
	for {
		_, _, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("Websocket read error", slog.String("error", err.Error()))
			}
			break
		}
	}
}

// ServeWs authenticates the peer via a token query parameter and upgrades
// the connection. Only admin and HR dashboards may subscribe.
func ServeWs(hub *Hub, c *gin.Context, jwtSecret string) {
	tokenString := c.Query("token")
	if tokenString == "" {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	claims, err := utils.ParseAndValidateJWT(tokenString, jwtSecret)
	if err != nil {
		hub.logger.Warn("Websocket connection rejected: invalid token", slog.String("error", err.Error()))
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	role := domain.Role(claims.Role)
	if !role.CanManageProgress() {
		hub.logger.Warn("Websocket connection rejected: inadequate permissions", slog.String("role", claims.Role))
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		hub.logger.Warn("Websocket upgrade failed", slog.String("error", err.Error()))
		return
	}
	client := &Client{Hub: hub, Conn: conn, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	go client.writePump()
	go client.readPump()
}
