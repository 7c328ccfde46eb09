package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"cockpit/internal/avatar"
	"cockpit/internal/command"
	"cockpit/internal/feedback"
	"cockpit/internal/language"
	"cockpit/internal/memory"
	"cockpit/internal/nlu"
	"cockpit/internal/observability"
	"cockpit/internal/profilestore"
	"cockpit/internal/recommend"
	"cockpit/internal/reply"
	"cockpit/internal/schedule"
	"cockpit/internal/session"
	"cockpit/internal/tasks"
)

// TurnKind tags the two possible outcomes of a processed turn.
type TurnKind string

const (
	TurnCommand      TurnKind = "command_response"
	TurnConversation TurnKind = "conversation_response"
)

// TurnResult is the structured outcome of one user utterance. Command turns
// carry only the command fields; conversation turns carry the rest.
type TurnResult struct {
	Kind   TurnKind `json:"type"`
	TurnID string   `json:"turn_id"`

	Command       string `json:"command,omitempty"`
	CommandResult string `json:"result,omitempty"`

	Input              string     `json:"original_input"`
	NormalizedInput    string     `json:"processed_input,omitempty"`
	Analysis           nlu.Result `json:"nlp_analysis,omitempty"`
	Reply              string     `json:"response,omitempty"`
	Recommendations    []string   `json:"recommendations,omitempty"`
	PreferencesApplied bool       `json:"user_preferences_applied"`

	ProcessedAt time.Time `json:"processed_at"`
}

// SessionSummary is returned when a session ends: turn activity measured
// against the user's episodic log over the session's time window.
type SessionSummary struct {
	SessionID  string    `json:"session_id"`
	UserID     string    `json:"user_id"`
	StartedAt  time.Time `json:"started_at"`
	EndedAt    time.Time `json:"ended_at"`
	LogEntries int       `json:"log_entries"`
	Summary    string    `json:"summary"`
}

// Deps collects the pipeline's injected collaborators.
type Deps struct {
	Sessions  *session.Manager
	Memory    memory.Store
	Profiles  profilestore.Store
	Commands  *command.Matcher
	Intents   *nlu.Classifier
	Language  *language.Normalizer
	Replies   *reply.Generator
	Recommend *recommend.Engine
	Feedback  *feedback.Processor
	Tasks     *tasks.Manager
	Schedule  *schedule.Scheduler
	Metrics   *observability.Metrics

	StoreTimeout    time.Duration
	MemoryRetention time.Duration
}

// Pipeline orchestrates one turn through the fixed stage sequence and owns
// the cross-component read-models (profile, report).
type Pipeline struct {
	deps   Deps
	avatar avatar.Profile
}

func New(deps Deps) *Pipeline {
	if deps.StoreTimeout <= 0 {
		deps.StoreTimeout = 2 * time.Second
	}
	if deps.MemoryRetention <= 0 {
		deps.MemoryRetention = 30 * 24 * time.Hour
	}
	return &Pipeline{deps: deps, avatar: avatar.DefaultProfile()}
}

// ProcessTurn runs one utterance through the pipeline. It never fails: the
// reply generator degrades to canned output and store errors are recorded on
// the stage-failure metric instead of aborting the turn.
//
// Stage order is fixed. Command matching runs against the raw input and
// short-circuits before anything is written to the episodic log. There is no
// transaction across the two log appends: a crash between them leaves an
// unanswered user entry, which is accepted.
func (p *Pipeline) ProcessTurn(ctx context.Context, rawText, userID string) TurnResult {
	started := time.Now()
	turnID := uuid.NewString()

	norm := p.deps.Language.NormalizeInput(rawText, userID)

	if cmd, ok := p.deps.Commands.Match(rawText); ok {
		p.deps.Metrics.TurnsTotal.WithLabelValues("command").Inc()
		p.deps.Metrics.ObserveTurnLatency(time.Since(started))
		return TurnResult{
			Kind:          TurnCommand,
			TurnID:        turnID,
			Command:       cmd.Name,
			CommandResult: cmd.Response,
			Input:         rawText,
			ProcessedAt:   time.Now().UTC(),
		}
	}

	analysis := p.deps.Intents.Classify(norm.ProcessedText)

	p.appendEntry(ctx, userID, memory.RoleUser, rawText)

	replyStart := time.Now()
	replyText, fellBack := p.deps.Replies.Generate(ctx, norm.ProcessedText, userID)
	p.deps.Metrics.ObserveStage("reply", time.Since(replyStart))
	if fellBack {
		p.deps.Metrics.StageFailures.WithLabelValues("reply_backend").Inc()
	}

	recommendations := p.deps.Recommend.Generate(userID, rawText)

	localized := p.deps.Language.Localize(replyText, userID)

	p.appendEntry(ctx, userID, memory.RoleAgent, localized.FinalText)

	p.deps.Metrics.TurnsTotal.WithLabelValues("conversation").Inc()
	p.deps.Metrics.ObserveTurnLatency(time.Since(started))

	return TurnResult{
		Kind:               TurnConversation,
		TurnID:             turnID,
		Input:              rawText,
		NormalizedInput:    norm.ProcessedText,
		Analysis:           analysis,
		Reply:              localized.FinalText,
		Recommendations:    recommendations,
		PreferencesApplied: norm.TargetLanguage != language.DefaultLanguage,
		ProcessedAt:        time.Now().UTC(),
	}
}

// appendEntry writes to the episodic log under a bounded timeout. Failures
// are local: the turn continues and the failure is surfaced on a metric.
func (p *Pipeline) appendEntry(ctx context.Context, userID string, role memory.Role, text string) {
	ctx, cancel := context.WithTimeout(ctx, p.deps.StoreTimeout)
	defer cancel()
	if err := p.deps.Memory.Append(ctx, memory.Entry{UserID: userID, Role: role, Text: text}); err != nil {
		p.deps.Metrics.StageFailures.WithLabelValues("memory_append").Inc()
	}
}

// StartSession registers a new session; duplicate active ids are rejected.
func (p *Pipeline) StartSession(userID, sessionID string) (*session.Session, error) {
	s, err := p.deps.Sessions.Start(userID, sessionID)
	if err != nil {
		return nil, err
	}
	p.deps.Metrics.SessionEvents.WithLabelValues("started").Inc()
	p.deps.Metrics.ActiveSessions.Set(float64(p.deps.Sessions.ActiveCount()))
	return s, nil
}

// EndSession discards the live session and summarizes its window from the
// episodic log. Unknown ids surface session.ErrNotFound; callers report it
// as a no-op rather than a failure.
func (p *Pipeline) EndSession(ctx context.Context, sessionID string) (SessionSummary, error) {
	s, err := p.deps.Sessions.End(sessionID)
	if err != nil {
		return SessionSummary{}, err
	}
	p.deps.Metrics.SessionEvents.WithLabelValues("ended").Inc()
	p.deps.Metrics.ActiveSessions.Set(float64(p.deps.Sessions.ActiveCount()))

	endedAt := time.Now().UTC()
	ctx, cancel := context.WithTimeout(ctx, p.deps.StoreTimeout)
	defer cancel()
	count, err := p.deps.Memory.CountBetween(ctx, s.UserID, s.StartedAt, endedAt)
	if err != nil {
		p.deps.Metrics.StageFailures.WithLabelValues("memory_count").Inc()
		count = 0
	}

	return SessionSummary{
		SessionID:  s.ID,
		UserID:     s.UserID,
		StartedAt:  s.StartedAt,
		EndedAt:    endedAt,
		LogEntries: count,
		Summary: fmt.Sprintf("Session between %s and %s with %d log entries.",
			s.StartedAt.Format(time.RFC3339), endedAt.Format(time.RFC3339), count),
	}, nil
}

// UpdatePreferences fans a preference update out to the recommendation
// engine, the document store, and (for the language key) the normalizer.
// The document store write is best-effort.
func (p *Pipeline) UpdatePreferences(ctx context.Context, userID string, prefs map[string]string) {
	p.deps.Recommend.UpdatePreferences(userID, prefs)

	ctx, cancel := context.WithTimeout(ctx, p.deps.StoreTimeout)
	defer cancel()
	if err := p.deps.Profiles.SavePreferences(ctx, userID, prefs); err != nil {
		p.deps.Metrics.StageFailures.WithLabelValues("profile_save").Inc()
	}

	if lang, ok := prefs["language"]; ok {
		p.deps.Language.SetPreference(userID, lang)
	}
}

// Recommendations generates suggestions outside of a turn, with no context.
func (p *Pipeline) Recommendations(userID string) []string {
	return p.deps.Recommend.Generate(userID, "")
}

// AddTask puts a new item on the user's task list.
func (p *Pipeline) AddTask(userID, title string) tasks.Task {
	return p.deps.Tasks.Add(userID, title)
}

// CompleteTask marks a task done and returns its final state.
func (p *Pipeline) CompleteTask(userID, taskID string) (tasks.Task, error) {
	return p.deps.Tasks.Complete(userID, taskID)
}

// AddEvent records an upcoming calendar entry for the user.
func (p *Pipeline) AddEvent(userID, title string, when time.Time) schedule.Event {
	p.deps.Schedule.AddEvent(userID, title, when)
	return schedule.Event{Title: title, Time: when.UTC()}
}

// AvatarConfig returns the static avatar descriptor for the UI.
func (p *Pipeline) AvatarConfig() avatar.Profile {
	return p.avatar
}

// Maintenance prunes episodic entries older than the retention window.
func (p *Pipeline) Maintenance(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, p.deps.StoreTimeout)
	defer cancel()
	cutoff := time.Now().UTC().Add(-p.deps.MemoryRetention)
	pruned, err := p.deps.Memory.PruneBefore(ctx, cutoff)
	if err != nil {
		p.deps.Metrics.StageFailures.WithLabelValues("memory_prune").Inc()
		return 0, err
	}
	return pruned, nil
}
