package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lucmas92/message-wall/internal/database"
	"github.com/lucmas92/message-wall/internal/metrics"
	"github.com/lucmas92/message-wall/internal/models"
	"github.com/lucmas92/message-wall/internal/wall"
)

// SubmitRequest is the JSON body of POST /api/messages.
type SubmitRequest struct {
	Text string `json:"text"`
}

// TransitionRequest is the JSON body of POST /api/messages/{id}/status.
type TransitionRequest struct {
	Status models.Status `json:"status"`
}

// HandleSubmit accepts an anonymous message submission.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "invalid JSON body")
		return
	}

	msg, err := h.wall.Submit(r.Context(), req.Text)
	switch {
	case errors.Is(err, wall.ErrEmptyText):
		metrics.SubmissionsRejectedTotal.WithLabelValues("empty").Inc()
		writeError(w, http.StatusBadRequest, "empty_text", "message text is required")
		return
	case errors.Is(err, wall.ErrTextTooLong):
		metrics.SubmissionsRejectedTotal.WithLabelValues("too_long").Inc()
		writeError(w, http.StatusBadRequest, "text_too_long", "message text is too long")
		return
	case errors.Is(err, wall.ErrProfanity):
		// a soft rejection for the submitter, not a server fault
		metrics.SubmissionsRejectedTotal.WithLabelValues("profanity").Inc()
		writeError(w, http.StatusUnprocessableEntity, "profanity_rejected", "message contains disallowed language")
		return
	case err != nil:
		log.Error().Err(err).Msg("handlers: submit failed")
		writeError(w, http.StatusInternalServerError, "store_unavailable", "could not save the message")
		return
	}

	metrics.SubmissionsTotal.Inc()
	writeJSON(w, http.StatusCreated, msg)
}

// HandleListMessages returns every message for the moderation panel,
// most recent first.
func (h *Handler) HandleListMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.wall.ListAll(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("handlers: list messages failed")
		writeError(w, http.StatusInternalServerError, "store_unavailable", "could not list messages")
		return
	}
	if msgs == nil {
		msgs = []*models.Message{}
	}
	writeJSON(w, http.StatusOK, msgs)
}

// HandleTransition applies a moderation decision to one message.
func (h *Handler) HandleTransition(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "message id must be numeric")
		return
	}

	var req TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "invalid JSON body")
		return
	}
	if !req.Status.Known() {
		writeError(w, http.StatusBadRequest, "invalid_status", "unknown target status")
		return
	}

	actor := string(h.auth.RoleFromRequest(r))
	msg, err := h.wall.Transition(r.Context(), id, req.Status, actor)
	switch {
	case errors.Is(err, wall.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, "invalid_status", "unknown target status")
		return
	case errors.Is(err, database.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "message not found")
		return
	case err != nil:
		log.Error().Err(err).Int64("id", id).Msg("handlers: transition failed")
		writeError(w, http.StatusInternalServerError, "store_unavailable", "could not update the message")
		return
	}

	metrics.TransitionsTotal.WithLabelValues(string(req.Status)).Inc()
	writeJSON(w, http.StatusOK, msg)
}

// HandleListApproved returns the messages currently eligible for display,
// soonest-to-expire first.
func (h *Handler) HandleListApproved(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.wall.ListDisplayable(r.Context(), time.Now().UTC())
	if err != nil {
		log.Error().Err(err).Msg("handlers: list approved failed")
		writeError(w, http.StatusInternalServerError, "store_unavailable", "could not list messages")
		return
	}
	if msgs == nil {
		msgs = []*models.Message{}
	}
	writeJSON(w, http.StatusOK, msgs)
}

// HandlePendingCount returns the moderation queue depth.
func (h *Handler) HandlePendingCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.wall.PendingCount(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("handlers: pending count failed")
		writeError(w, http.StatusInternalServerError, "store_unavailable", "could not count messages")
		return
	}
	metrics.PendingMessages.Set(float64(count))
	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}
