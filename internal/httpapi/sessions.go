package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"cockpit/internal/session"
)

type startSessionRequest struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
}

type startSessionResponse struct {
	SessionID       string `json:"session_id"`
	UserID          string `json:"user_id"`
	StartedAt       string `json:"started_at"`
	InactivityTTLMS int64  `json:"inactivity_ttl_ms"`
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		req.UserID = "anonymous"
	}

	sess, err := s.pipeline.StartSession(req.UserID, strings.TrimSpace(req.SessionID))
	if err != nil {
		if errors.Is(err, session.ErrActive) {
			respondError(w, http.StatusConflict, "session_already_active", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "session_start_failed", err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, startSessionResponse{
		SessionID:       sess.ID,
		UserID:          sess.UserID,
		StartedAt:       sess.StartedAt.Format("2006-01-02T15:04:05.000Z07:00"),
		InactivityTTLMS: s.cfg.SessionInactivityTimeout.Milliseconds(),
	})
}

// Ending a session that does not exist is reported, not failed: callers may
// retry the end call after a disconnect.
func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		respondError(w, http.StatusBadRequest, "invalid_session_id", "missing session id")
		return
	}

	summary, err := s.pipeline.EndSession(r.Context(), id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			respondJSON(w, http.StatusOK, map[string]any{
				"session_id": id,
				"ended":      false,
				"detail":     "no active session with this id",
			})
			return
		}
		respondError(w, http.StatusInternalServerError, "session_end_failed", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"session_id": summary.SessionID,
		"ended":      true,
		"summary":    summary,
	})
}
