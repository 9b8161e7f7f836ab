package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/lucmas92/message-wall/internal/database/boltstore"
)

// UpdateSettingRequest is the JSON body of PUT /api/settings/{key}.
type UpdateSettingRequest struct {
	Value       json.RawMessage `json:"value"`
	Description string          `json:"description,omitempty"`
}

// HandleListSettings returns every runtime setting.
func (h *Handler) HandleListSettings(w http.ResponseWriter, r *http.Request) {
	if h.settings == nil {
		writeError(w, http.StatusServiceUnavailable, "settings_disabled", "settings storage is not configured")
		return
	}
	settings, err := h.settings.List()
	if err != nil {
		log.Error().Err(err).Msg("handlers: list settings failed")
		writeError(w, http.StatusInternalServerError, "store_unavailable", "could not list settings")
		return
	}
	if settings == nil {
		settings = []boltstore.Setting{}
	}
	writeJSON(w, http.StatusOK, settings)
}

// HandleUpdateSetting stores a setting value under the key in the path.
func (h *Handler) HandleUpdateSetting(w http.ResponseWriter, r *http.Request) {
	if h.settings == nil {
		writeError(w, http.StatusServiceUnavailable, "settings_disabled", "settings storage is not configured")
		return
	}
	key := r.PathValue("key")
	if key == "" {
		writeError(w, http.StatusBadRequest, "invalid_key", "setting key is required")
		return
	}

	var req UpdateSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Value) == 0 {
		writeError(w, http.StatusBadRequest, "invalid_body", "a JSON value is required")
		return
	}

	setting, err := h.settings.Set(key, req.Value, req.Description)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("handlers: update setting failed")
		writeError(w, http.StatusInternalServerError, "store_unavailable", "could not update the setting")
		return
	}
	writeJSON(w, http.StatusOK, setting)
}

// HandleListAudit returns recent moderation actions, newest first.
func (h *Handler) HandleListAudit(w http.ResponseWriter, r *http.Request) {
	if h.audit == nil {
		writeError(w, http.StatusServiceUnavailable, "audit_disabled", "audit storage is not configured")
		return
	}
	entries, err := h.audit.List(100)
	if err != nil {
		log.Error().Err(err).Msg("handlers: list audit failed")
		writeError(w, http.StatusInternalServerError, "store_unavailable", "could not list audit entries")
		return
	}
	if entries == nil {
		entries = []boltstore.AuditEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
