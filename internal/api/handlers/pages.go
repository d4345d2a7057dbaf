package handlers

import (
	"net/http"
	"path/filepath"
)

// PageRoutes are the human-facing paths. Routing between them happens on
// the client; the server answers each with the same entry page.
var PageRoutes = []string{
	"/",
	"/add_transaction",
	"/add_food",
	"/add_trip",
	"/view_transactions",
	"/search",
	"/messages",
	"/login",
	"/settings",
}

// PagesHandler serves the single-page front end.
type PagesHandler struct {
	staticDir string
}

// NewPagesHandler creates a handler serving the entry page from staticDir.
func NewPagesHandler(staticDir string) *PagesHandler {
	return &PagesHandler{staticDir: staticDir}
}

// ServePage answers with the front-end entry page.
func (h *PagesHandler) ServePage(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(h.staticDir, "index.html"))
}
