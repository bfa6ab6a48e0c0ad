package server

import (
	"encoding/json"
	"net/http"
)

// HandlerConfig controls how NewHTTPHandler wires routes and middleware.
type HandlerConfig struct {
	// StaticDir is the SPA asset root served for unmatched routes.
	StaticDir string
	// AdminRoutes registers /api/admin/* when true. Left false, those paths
	// fall through to the SPA handler like any other unmatched route.
	AdminRoutes bool
	// AuthToken, when non-empty, requires Authorization: Bearer <token> on
	// the admin routes. The public API and /healthz are never authenticated.
	AuthToken string
}

// NewHTTPHandler returns an http.Handler with all routes registered. The SPA
// fallback is the catch-all: it must stay the bare "/" pattern so every API
// route above it wins.
func (s *Server) NewHTTPHandler(cfg HandlerConfig) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/clients", s.handleListClients)
	mux.HandleFunc("POST /api/clients", s.handleCreateClient)
	mux.HandleFunc("PUT /api/clients/{id}", s.handleRenameClient)
	mux.HandleFunc("DELETE /api/clients/{id}", s.handleDeleteClient)
	mux.HandleFunc("GET /api/clients/{id}/state", s.handleGetState)
	mux.HandleFunc("PUT /api/clients/{id}/state", s.handlePutState)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	if cfg.AdminRoutes {
		admin := http.NewServeMux()
		admin.HandleFunc("GET /api/admin/reset-all", s.handleResetAll)
		admin.HandleFunc("GET /api/admin/export", s.handleExport)
		mux.Handle("/api/admin/", AuthMiddleware(cfg.AuthToken, admin))
	}

	mux.Handle("/", NewSPAHandler(cfg.StaticDir))

	return Recovery(RequestLogging(mux))
}

// handleHealth handles GET /healthz.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
