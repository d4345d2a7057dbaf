package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/avolkov/pennywise/internal/api/middleware"
	"github.com/avolkov/pennywise/internal/ledger"
)

// ChatHandler handles /api/chat.
type ChatHandler struct {
	ledger *ledger.Ledger
	log    zerolog.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(l *ledger.Ledger, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{ledger: l, log: log}
}

// History handles GET /api/chat.
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	if userID == "" {
		middleware.WriteError(w, http.StatusBadRequest, "User ID required")
		return
	}

	msgs, err := h.ledger.ChatHistory(r.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to load chat history")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to load chat history")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, msgs)
}

// Post handles POST /api/chat, appending one message with a server-assigned
// timestamp.
func (h *ChatHandler) Post(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	if userID == "" {
		middleware.WriteError(w, http.StatusBadRequest, "User ID required")
		return
	}

	var req struct {
		Sender string `json:"sender"`
		Text   string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.ledger.AppendMessage(r.Context(), userID, req.Sender, req.Text); err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to append chat message")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to save message")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
