package httpapi

import (
	"net/http"
	"strings"
)

type turnRequest struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

func (s *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "user_id is required")
		return
	}

	if sessionID := strings.TrimSpace(req.SessionID); sessionID != "" {
		if _, err := s.sessions.Get(sessionID); err != nil {
			respondError(w, http.StatusNotFound, "session_not_found", err.Error())
			return
		}
		defer func() { _ = s.sessions.RecordTurn(sessionID) }()
	}

	result := s.pipeline.ProcessTurn(r.Context(), req.Text, req.UserID)
	respondJSON(w, http.StatusOK, result)
}
