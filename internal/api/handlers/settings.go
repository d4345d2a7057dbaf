package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/avolkov/pennywise/internal/api/middleware"
	"github.com/avolkov/pennywise/internal/domain"
	"github.com/avolkov/pennywise/internal/ledger"
)

// SettingsHandler handles /api/settings.
type SettingsHandler struct {
	ledger *ledger.Ledger
	log    zerolog.Logger
}

// NewSettingsHandler creates a new settings handler.
func NewSettingsHandler(l *ledger.Ledger, log zerolog.Logger) *SettingsHandler {
	return &SettingsHandler{ledger: l, log: log}
}

// Get handles GET /api/settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	if userID == "" {
		middleware.WriteError(w, http.StatusBadRequest, "User ID required")
		return
	}

	settings, err := h.ledger.Settings(r.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to load settings")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to load settings")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, settings)
}

// Update handles POST /api/settings. The body is a partial settings object;
// only the fields it carries are changed.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	if userID == "" {
		middleware.WriteError(w, http.StatusBadRequest, "User ID required")
		return
	}

	var patch domain.SettingsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.ledger.PatchSettings(r.Context(), userID, patch); err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to update settings")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to update settings")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
