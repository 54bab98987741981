package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/cmaddox5/holderbot/internal/game"
	"github.com/cmaddox5/holderbot/internal/models"
)

// Event is the wire shape pushed to feed subscribers.
type Event struct {
	Type      string            `json:"type"`
	Result    *game.Result      `json:"result,omitempty"`
	Standings []models.Standing `json:"standings,omitempty"`
}

const (
	EventTypeRoundResult = "round_result"
)

// Hub fans round results out to WebSocket feed subscribers. All
// subscribers share one pool; there is no per-topic routing.
type Hub struct {
	connections map[*connection]bool
	mu          sync.RWMutex

	upgrader websocket.Upgrader
	config   ConnectionConfig

	broadcastCh chan Event
}

type connection struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	hub  *Hub

	connectedAt time.Time
}

// ConnectionConfig holds configuration for WebSocket connections.
type ConnectionConfig struct {
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
	PingInterval    time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	CheckOrigin     func(r *http.Request) bool
}

// DefaultConnectionConfig returns default WebSocket configuration.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		WriteTimeout:    10 * time.Second,
		ReadTimeout:     60 * time.Second,
		PingInterval:    30 * time.Second,
		MaxMessageSize:  1024,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			// Allow all origins in development - restrict in production
			return true
		},
	}
}

// NewHub creates a feed hub. Call Start to begin processing broadcasts.
func NewHub(config ConnectionConfig) *Hub {
	return &Hub{
		connections: make(map[*connection]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		config:      config,
		broadcastCh: make(chan Event, 64),
	}
}

// Start begins processing broadcast events until ctx is cancelled.
func (h *Hub) Start(ctx context.Context) {
	log.Info().Msg("feed hub started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("feed hub shutting down")
			return
		case event := <-h.broadcastCh:
			h.handleBroadcast(event)
		}
	}
}

// BroadcastRound queues a finished round for delivery to every subscriber.
func (h *Hub) BroadcastRound(result *game.Result, standings []models.Standing) {
	event := Event{Type: EventTypeRoundResult, Result: result, Standings: standings}
	select {
	case h.broadcastCh <- event:
	default:
		log.Warn().Str("round_id", result.RoundID).Msg("broadcast channel full, dropping event")
	}
}

// Upgrade upgrades an HTTP request to a WebSocket feed subscription.
func (h *Hub) Upgrade(w http.ResponseWriter, r *http.Request) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to upgrade WebSocket connection")
		return fmt.Errorf("failed to upgrade connection: %w", err)
	}

	c := &connection{
		id:          uuid.New().String(),
		conn:        conn,
		send:        make(chan []byte, 256),
		hub:         h,
		connectedAt: time.Now(),
	}

	h.register(c)

	go c.writePump()
	go c.readPump()

	log.Info().
		Str("connection_id", c.id).
		Str("remote_addr", r.RemoteAddr).
		Msg("WebSocket connection established")

	return nil
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.connections[c] = true

	log.Debug().
		Str("connection_id", c.id).
		Int("total_connections", len(h.connections)).
		Msg("connection registered")
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.connections[c]; exists {
		delete(h.connections, c)
		close(c.send)

		log.Info().
			Str("connection_id", c.id).
			Msg("connection unregistered")
	}
}

func (h *Hub) handleBroadcast(event Event) {
	h.mu.RLock()
	targets := make([]*connection, 0, len(h.connections))
	for c := range h.connections {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	if len(targets) == 0 {
		return
	}

	// Marshal once for every subscriber.
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal event for broadcast")
		return
	}

	for _, c := range targets {
		select {
		case c.send <- data:
		default:
			// Connection is slow/dead, close it
			log.Warn().
				Str("connection_id", c.id).
				Msg("connection send buffer full, closing connection")
			h.unregister(c)
			c.conn.Close()
		}
	}

	log.Debug().
		Str("event_type", event.Type).
		Int("connections", len(targets)).
		Msg("event broadcasted")
}

// ConnectionCount reports how many subscribers are attached.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

func (c *connection) writePump() {
	ticker := time.NewTicker(c.hub.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
		c.hub.unregister(c)
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.hub.config.WriteTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Error().
					Err(err).
					Str("connection_id", c.id).
					Msg("failed to write message to WebSocket")
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.hub.config.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Error().
					Err(err).
					Str("connection_id", c.id).
					Msg("failed to send ping")
				return
			}
		}
	}
}

// readPump drains client frames. The feed is one-way; anything the client
// sends beyond pongs is logged and discarded.
func (c *connection) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(c.hub.config.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.hub.config.ReadTimeout))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.hub.config.ReadTimeout))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().
					Err(err).
					Str("connection_id", c.id).
					Msg("unexpected WebSocket close error")
			}
			break
		}

		log.Debug().
			Str("connection_id", c.id).
			RawJSON("message", message).
			Msg("received client message")
		c.conn.SetReadDeadline(time.Now().Add(c.hub.config.ReadTimeout))
	}
}
