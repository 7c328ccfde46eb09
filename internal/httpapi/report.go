package httpapi

import (
	"net/http"
	"strings"
)

func (s *Server) handleAvatar(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.pipeline.AvatarConfig())
}

func (s *Server) handleReport(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.pipeline.GenerateReport(s.storeMode))
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":          "ok",
		"store_mode":      s.storeMode,
		"reply_backend":   s.cfg.BrainMode,
		"active_sessions": s.sessions.ActiveCount(),
		"checks": map[string]bool{
			"completion_configured": strings.TrimSpace(s.cfg.CompletionKey) != "",
			"database_configured":   strings.TrimSpace(s.cfg.DatabaseURL) != "",
		},
	})
}
