package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/avolkov/pennywise/internal/ai"
	"github.com/avolkov/pennywise/internal/api/middleware"
)

// AIHandler handles POST /api/ai-response.
type AIHandler struct {
	responder ai.Responder
	log       zerolog.Logger
}

// NewAIHandler creates a new AI response handler.
func NewAIHandler(responder ai.Responder, log zerolog.Logger) *AIHandler {
	return &AIHandler{responder: responder, log: log}
}

// Respond produces an assistant reply for the message in the body. A
// failing responder degrades to the canned placeholder instead of erroring.
func (h *AIHandler) Respond(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	reply, err := h.responder.Reply(r.Context(), req.Message)
	if err != nil {
		h.log.Warn().Err(err).Msg("Responder failed, using canned reply")
		reply, _ = ai.Canned{}.Reply(r.Context(), req.Message)
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"response": reply})
}
