package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"cockpit/internal/agent"
	"cockpit/internal/config"
	"cockpit/internal/observability"
	"cockpit/internal/protocol"
	"cockpit/internal/session"
)

type Server struct {
	cfg       config.Config
	pipeline  *agent.Pipeline
	sessions  *session.Manager
	metrics   *observability.Metrics
	upgrader  websocket.Upgrader
	storeMode string
}

func New(cfg config.Config, pipeline *agent.Pipeline, sessions *session.Manager, metrics *observability.Metrics, storeMode string) *Server {
	return &Server{
		cfg:       cfg,
		pipeline:  pipeline,
		sessions:  sessions,
		metrics:   metrics,
		storeMode: storeMode,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				// Only allow browser websocket connections from the same origin
				// unless explicitly opened up. Non-browser clients omit Origin
				// and are allowed.
				if cfg.AllowAnyOrigin {
					return true
				}
				origin := strings.TrimSpace(r.Header.Get("Origin"))
				if origin == "" {
					return true
				}
				u, err := url.Parse(origin)
				if err != nil {
					return false
				}
				if u.Scheme != "http" && u.Scheme != "https" {
					return false
				}
				return strings.EqualFold(u.Host, r.Host)
			},
		},
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		observability.MetricsHandler().ServeHTTP(w, r)
	})

	r.Post("/v1/sessions", s.handleStartSession)
	r.Post("/v1/sessions/{id}/end", s.handleEndSession)
	r.Get("/v1/sessions/ws", s.handleSessionWS)

	r.Post("/v1/turn", s.handleTurn)

	r.Get("/v1/users/{id}/profile", s.handleProfile)
	r.Put("/v1/users/{id}/preferences", s.handleUpdatePreferences)
	r.Get("/v1/users/{id}/recommendations", s.handleRecommendations)
	r.Post("/v1/users/{id}/feedback", s.handleSubmitFeedback)
	r.Get("/v1/users/{id}/feedback/request", s.handleFeedbackRequest)
	r.Post("/v1/users/{id}/tasks", s.handleCreateTask)
	r.Post("/v1/users/{id}/tasks/{taskID}/complete", s.handleCompleteTask)
	r.Post("/v1/users/{id}/events", s.handleCreateEvent)

	r.Get("/v1/avatar", s.handleAvatar)
	r.Get("/v1/report", s.handleReport)
	r.Get("/v1/status", s.handleStatus)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"store_mode": s.storeMode,
	})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":     "ready",
		"store_mode": s.storeMode,
	})
}

func (s *Server) handleSessionWS(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(r.URL.Query().Get("session_id"))
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session_id", "query parameter session_id is required")
		return
	}

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, "session_not_found", err.Error())
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	s.metrics.SessionEvents.WithLabelValues("ws_connected").Inc()

	ctx := r.Context()
	outbound := make(chan any, 64)
	writerDone := make(chan struct{})

	// All websocket writes go through this goroutine.
	go func() {
		defer close(writerDone)
		for msg := range outbound {
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
			if t, ok := messageTypeOf(msg); ok {
				s.metrics.WSMessages.WithLabelValues("outbound", string(t)).Inc()
			}
		}
	}()

	conn.SetReadLimit(1 << 20)
	_ = conn.SetReadDeadline(time.Now().Add(120 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(120 * time.Second))
		return nil
	})

readLoop:
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		if msgType != websocket.TextMessage {
			continue
		}
		_ = conn.SetReadDeadline(time.Now().Add(120 * time.Second))

		parsed, err := protocol.ParseClientMessage(data)
		if err != nil {
			s.queueOutbound(outbound, protocol.ErrorEvent{
				Type:      protocol.TypeErrorEvent,
				SessionID: sessionID,
				Code:      "invalid_client_message",
				Retryable: false,
				Detail:    err.Error(),
			})
			continue
		}
		if t, ok := messageTypeOf(parsed); ok {
			s.metrics.WSMessages.WithLabelValues("inbound", string(t)).Inc()
		}

		switch msg := parsed.(type) {
		case protocol.ClientUtterance:
			if msg.SessionID != sessionID {
				s.queueOutbound(outbound, protocol.ErrorEvent{
					Type:      protocol.TypeErrorEvent,
					SessionID: sessionID,
					Code:      "session_mismatch",
					Retryable: false,
					Detail:    "utterance addressed to a different session",
				})
				continue
			}
			result := s.pipeline.ProcessTurn(ctx, msg.Text, sess.UserID)
			_ = s.sessions.RecordTurn(sessionID)
			s.queueOutbound(outbound, protocol.TurnResult{
				Type:      protocol.TypeTurnResult,
				SessionID: sessionID,
				Result:    result,
			})
		case protocol.ClientControl:
			switch msg.Action {
			case "end_session":
				summary, err := s.pipeline.EndSession(ctx, sessionID)
				if err != nil {
					s.queueOutbound(outbound, protocol.SystemEvent{
						Type:      protocol.TypeSystemEvent,
						SessionID: sessionID,
						Code:      "session_already_ended",
					})
					break readLoop
				}
				s.queueOutbound(outbound, protocol.SessionSummary{
					Type:      protocol.TypeSessionSummary,
					SessionID: sessionID,
					Summary:   summary,
				})
				break readLoop
			case "ping":
				_ = s.sessions.Touch(sessionID)
				s.queueOutbound(outbound, protocol.SystemEvent{
					Type:      protocol.TypeSystemEvent,
					SessionID: sessionID,
					Code:      "pong",
				})
			default:
				s.queueOutbound(outbound, protocol.ErrorEvent{
					Type:      protocol.TypeErrorEvent,
					SessionID: sessionID,
					Code:      "unsupported_action",
					Retryable: false,
					Detail:    msg.Action,
				})
			}
		}
	}

	close(outbound)
	<-writerDone
	s.metrics.SessionEvents.WithLabelValues("ws_disconnected").Inc()
}

// queueOutbound keeps websocket writes single-threaded; drops if the
// outbound queue is saturated.
func (s *Server) queueOutbound(outbound chan<- any, msg any) {
	select {
	case outbound <- msg:
	default:
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

var errEmptyBody = errors.New("empty body")

func decodeJSON(r *http.Request, out any) error {
	if r.Body == nil {
		return errEmptyBody
	}
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(out); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "eof") {
			return errEmptyBody
		}
		return err
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: message, Code: code})
}

func userIDParam(r *http.Request) string {
	return strings.TrimSpace(chi.URLParam(r, "id"))
}

func messageTypeOf(v any) (protocol.MessageType, bool) {
	switch m := v.(type) {
	case protocol.ClientUtterance:
		return m.Type, true
	case protocol.ClientControl:
		return m.Type, true
	case protocol.TurnResult:
		return m.Type, true
	case protocol.SessionSummary:
		return m.Type, true
	case protocol.SystemEvent:
		return m.Type, true
	case protocol.ErrorEvent:
		return m.Type, true
	default:
		return "", false
	}
}
