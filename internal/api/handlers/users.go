package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/avolkov/pennywise/internal/api/middleware"
	"github.com/avolkov/pennywise/internal/directory"
)

// UsersHandler handles POST /api/users (register and login).
type UsersHandler struct {
	directory *directory.Directory
	log       zerolog.Logger
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(d *directory.Directory, log zerolog.Logger) *UsersHandler {
	return &UsersHandler{directory: d, log: log}
}

// Handle dispatches on the body's action field.
func (h *UsersHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Action   string `json:"action"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	switch req.Action {
	case "register":
		userID, err := h.directory.Register(r.Context(), req.Email, req.Password)
		if errors.Is(err, directory.ErrEmailTaken) {
			middleware.WriteError(w, http.StatusConflict, "User already exists")
			return
		}
		if err != nil {
			h.log.Error().Err(err).Str("email", req.Email).Msg("Failed to register user")
			middleware.WriteError(w, http.StatusInternalServerError, "Failed to register user")
			return
		}
		h.log.Info().Str("user_id", userID).Msg("User registered")
		middleware.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "user_id": userID})

	case "login":
		userID, err := h.directory.Login(r.Context(), req.Email, req.Password)
		if errors.Is(err, directory.ErrBadCredentials) {
			middleware.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		if err != nil {
			h.log.Error().Err(err).Str("email", req.Email).Msg("Failed to log user in")
			middleware.WriteError(w, http.StatusInternalServerError, "Failed to log in")
			return
		}
		middleware.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "user_id": userID})

	default:
		middleware.WriteError(w, http.StatusBadRequest, "Unknown action")
	}
}
