package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/avolkov/pennywise/internal/api/middleware"
	"github.com/avolkov/pennywise/internal/ledger"
)

// AnalyticsHandler handles GET /api/analytics.
type AnalyticsHandler struct {
	ledger *ledger.Ledger
	log    zerolog.Logger
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(l *ledger.Ledger, log zerolog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{ledger: l, log: log}
}

// Report returns the derived spending summary. A missing user identifier or
// a user with no resident transactions yields a zeroed report, not an error.
func (h *AnalyticsHandler) Report(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, h.ledger.Report(middleware.UserID(r)))
}
