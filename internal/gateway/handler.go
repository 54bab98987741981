package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/cmaddox5/holderbot/internal/game"
)

// Handler exposes the hub and the session scoreboard over HTTP.
type Handler struct {
	hub     *Hub
	session *game.Session
}

func NewHandler(hub *Hub, session *game.Session) *Handler {
	return &Handler{hub: hub, session: session}
}

// RegisterRoutes attaches the gateway endpoints to mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws/feed", h.handleFeed)
	mux.HandleFunc("/leaderboard", h.handleLeaderboard)
	mux.HandleFunc("/health", h.handleHealth)
}

func (h *Handler) handleFeed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := h.hub.Upgrade(w, r); err != nil {
		// Upgrade already wrote the handshake error response.
		log.Warn().Err(err).Str("remote_addr", r.RemoteAddr).Msg("feed subscription failed")
	}
}

func (h *Handler) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	standings := h.session.Standings()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(standings); err != nil {
		log.Error().Err(err).Msg("failed to encode leaderboard")
	}
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":      "ok",
		"subscribers": h.hub.ConnectionCount(),
	})
}
