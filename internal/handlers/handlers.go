// Package handlers contains the HTTP surface of the message wall.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/lucmas92/message-wall/internal/auth"
	"github.com/lucmas92/message-wall/internal/database"
	"github.com/lucmas92/message-wall/internal/database/boltstore"
	"github.com/lucmas92/message-wall/internal/models"
	"github.com/lucmas92/message-wall/internal/wall"
)

// Config holds handler configuration options.
type Config struct {
	// AllowedOrigins restricts websocket upgrades, mirroring the CORS
	// origin list used for the REST surface.
	AllowedOrigins []string
}

// Handler contains all HTTP handler methods and their dependencies.
// Dependencies are injected via the constructor for better testability.
type Handler struct {
	wall     *wall.Service
	auth     *auth.Service
	settings *boltstore.SettingsStore // optional
	audit    *boltstore.AuditStore    // optional
	store    database.Store
	config   Config
}

// NewHandler creates a new Handler with all required dependencies.
func NewHandler(w *wall.Service, a *auth.Service, store database.Store, cfg Config) *Handler {
	return &Handler{wall: w, auth: a, store: store, config: cfg}
}

// WithSettings attaches the settings store, enabling the settings endpoints.
func (h *Handler) WithSettings(s *boltstore.SettingsStore) *Handler {
	h.settings = s
	return h
}

// WithAudit attaches the audit store, enabling the audit listing endpoint.
func (h *Handler) WithAudit(a *boltstore.AuditStore) *Handler {
	h.audit = a
	return h
}

// HandleHealthz reports liveness and store reachability.
func (h *Handler) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	if _, err := h.store.CountMessages(r.Context(), models.StatusPending); err != nil {
		log.Error().Err(err).Msg("healthz: store unreachable")
		writeError(w, http.StatusServiceUnavailable, "store_unavailable", "store unreachable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("handlers: failed to encode response")
	}
}

// errorResponse is the uniform error body of the API.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}
