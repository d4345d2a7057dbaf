package handlers

import (
	"net/http"

	"github.com/avolkov/pennywise/internal/api/middleware"
	"github.com/avolkov/pennywise/internal/catclient"
)

// CatsHandler proxies the cat fact and cat image endpoints. Failures never
// surface; the client falls back to hardcoded values.
type CatsHandler struct {
	client *catclient.Client
}

// NewCatsHandler creates a new cats handler.
func NewCatsHandler(c *catclient.Client) *CatsHandler {
	return &CatsHandler{client: c}
}

// Fact handles GET /api/cat-fact.
func (h *CatsHandler) Fact(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"fact": h.client.Fact(r.Context())})
}

// Image handles GET /api/cat-image.
func (h *CatsHandler) Image(w http.ResponseWriter, r *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"url": h.client.ImageURL(r.Context())})
}
