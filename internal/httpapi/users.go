package httpapi

import (
	"net/http"

	"cockpit/internal/agent"
)

type updatePreferencesRequest struct {
	Preferences map[string]string `json:"preferences"`
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	userID := userIDParam(r)
	if userID == "" {
		respondError(w, http.StatusBadRequest, "invalid_user_id", "missing user id")
		return
	}
	respondJSON(w, http.StatusOK, s.pipeline.Profile(r.Context(), userID))
}

func (s *Server) handleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID := userIDParam(r)
	if userID == "" {
		respondError(w, http.StatusBadRequest, "invalid_user_id", "missing user id")
		return
	}

	var req updatePreferencesRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if len(req.Preferences) == 0 {
		respondError(w, http.StatusBadRequest, "invalid_request", "preferences must not be empty")
		return
	}

	s.pipeline.UpdatePreferences(r.Context(), userID, req.Preferences)
	respondJSON(w, http.StatusOK, map[string]any{
		"user_id":     userID,
		"preferences": req.Preferences,
	})
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	userID := userIDParam(r)
	if userID == "" {
		respondError(w, http.StatusBadRequest, "invalid_user_id", "missing user id")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"user_id":         userID,
		"recommendations": s.pipeline.Recommendations(userID),
	})
}

func (s *Server) handleSubmitFeedback(w http.ResponseWriter, r *http.Request) {
	userID := userIDParam(r)
	if userID == "" {
		respondError(w, http.StatusBadRequest, "invalid_user_id", "missing user id")
		return
	}

	var sub agent.FeedbackSubmission
	if err := decodeJSON(r, &sub); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if err := s.pipeline.SubmitFeedback(userID, sub); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_feedback", err.Error())
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]any{
		"user_id": userID,
		"kind":    sub.Kind,
	})
}

func (s *Server) handleFeedbackRequest(w http.ResponseWriter, r *http.Request) {
	userID := userIDParam(r)
	if userID == "" {
		respondError(w, http.StatusBadRequest, "invalid_user_id", "missing user id")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"user_id": userID,
		"prompt":  s.pipeline.FeedbackRequest(userID),
	})
}
