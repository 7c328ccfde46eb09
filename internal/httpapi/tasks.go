package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"cockpit/internal/tasks"
)

type createTaskRequest struct {
	Title string `json:"title"`
}

type createEventRequest struct {
	Title string `json:"title"`
	Time  string `json:"time"`
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	userID := userIDParam(r)
	if userID == "" {
		respondError(w, http.StatusBadRequest, "invalid_user_id", "missing user id")
		return
	}

	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "title is required")
		return
	}

	task := s.pipeline.AddTask(userID, req.Title)
	respondJSON(w, http.StatusCreated, task)
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	userID := userIDParam(r)
	taskID := strings.TrimSpace(chi.URLParam(r, "taskID"))
	if userID == "" || taskID == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "missing user or task id")
		return
	}

	task, err := s.pipeline.CompleteTask(userID, taskID)
	if err != nil {
		if errors.Is(err, tasks.ErrNotFound) {
			respondError(w, http.StatusNotFound, "task_not_found", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "task_complete_failed", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, task)
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	userID := userIDParam(r)
	if userID == "" {
		respondError(w, http.StatusBadRequest, "invalid_user_id", "missing user id")
		return
	}

	var req createEventRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "title is required")
		return
	}

	when := time.Now().UTC().Add(time.Hour)
	if strings.TrimSpace(req.Time) != "" {
		parsed, err := time.Parse(time.RFC3339, req.Time)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_request", "time must be RFC 3339")
			return
		}
		when = parsed
	}

	event := s.pipeline.AddEvent(userID, req.Title, when)
	respondJSON(w, http.StatusCreated, event)
}
