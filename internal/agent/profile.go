package agent

import (
	"context"
	"fmt"
	"time"

	"cockpit/internal/feedback"
	"cockpit/internal/observability"
	"cockpit/internal/recommend"
	"cockpit/internal/schedule"
	"cockpit/internal/tasks"
)

// Profile is the logical user profile, composed at read time from each
// subsystem. There is no cross-component transaction: every field is
// best-effort and a failing subsystem degrades to its zero value.
type Profile struct {
	UserID            string                           `json:"user_id"`
	SatisfactionScore float64                          `json:"satisfaction_score"`
	TaskSummary       tasks.Summary                    `json:"task_summary"`
	EventSummary      schedule.Summary                 `json:"event_summary"`
	Personalization   recommend.PersonalizationSummary `json:"personalization_data"`
	SystemData        map[string]string                `json:"system_data"`
}

// Report is the periodic system-wide read-model.
type Report struct {
	Timestamp              time.Time                       `json:"timestamp"`
	ActiveUsers            int                             `json:"active_users"`
	ActiveSessions         int                             `json:"active_sessions"`
	FeedbackAnalytics      feedback.Analytics              `json:"feedback_analytics"`
	ImprovementSuggestions []string                        `json:"improvement_suggestions"`
	SystemHealth           SystemHealth                    `json:"system_health"`
	UsageMetrics           UsageMetrics                    `json:"usage_metrics"`
	StageLatency           observability.TurnStageSnapshot `json:"stage_latency"`
}

type SystemHealth struct {
	ComponentsReady int    `json:"components_ready"`
	StoreMode       string `json:"store_mode"`
	LastError       string `json:"last_error,omitempty"`
}

type UsageMetrics struct {
	TotalFeedbackEntries int `json:"total_feedback_entries"`
}

// FeedbackSubmission is the inbound feedback payload, tagged by kind.
type FeedbackSubmission struct {
	Kind    feedback.Kind     `json:"kind"`
	Rating  int               `json:"rating,omitempty"`
	Comment string            `json:"comment,omitempty"`
	Text    string            `json:"text,omitempty"`
	Issue   map[string]string `json:"issue,omitempty"`
}

// SubmitFeedback routes a submission to the matching processor variant.
func (p *Pipeline) SubmitFeedback(userID string, sub FeedbackSubmission) error {
	switch sub.Kind {
	case feedback.KindRating:
		p.deps.Feedback.SubmitRating(userID, sub.Rating, sub.Comment)
	case feedback.KindText:
		p.deps.Feedback.SubmitText(userID, sub.Text)
	case feedback.KindIssue:
		p.deps.Feedback.SubmitIssue(userID, sub.Issue)
	default:
		return fmt.Errorf("unsupported feedback kind %q", sub.Kind)
	}
	return nil
}

// FeedbackRequest returns a prompt tailored to the user's satisfaction.
func (p *Pipeline) FeedbackRequest(userID string) string {
	return p.deps.Feedback.RequestPrompt(userID)
}

// Profile aggregates the per-user read-model. Fields come from independent
// subsystems; a document-store failure yields empty system data rather than
// failing the whole profile.
func (p *Pipeline) Profile(ctx context.Context, userID string) Profile {
	prof := Profile{
		UserID:            userID,
		SatisfactionScore: p.deps.Feedback.SatisfactionScore(userID),
		TaskSummary:       p.deps.Tasks.Summarize(userID),
		EventSummary:      p.deps.Schedule.Summarize(userID),
		Personalization:   p.deps.Recommend.Summarize(userID),
		SystemData:        map[string]string{},
	}

	ctx, cancel := context.WithTimeout(ctx, p.deps.StoreTimeout)
	defer cancel()
	doc, err := p.deps.Profiles.UserData(ctx, userID)
	if err != nil {
		p.deps.Metrics.StageFailures.WithLabelValues("profile_read").Inc()
		return prof
	}
	prof.SystemData = doc.Preferences
	return prof
}

// GenerateReport assembles the periodic system report.
func (p *Pipeline) GenerateReport(storeMode string) Report {
	fb := p.deps.Feedback.GenerateReport()
	return Report{
		Timestamp:              time.Now().UTC(),
		ActiveUsers:            p.deps.Feedback.ActiveUsers(),
		ActiveSessions:         p.deps.Sessions.ActiveCount(),
		FeedbackAnalytics:      fb.Analytics,
		ImprovementSuggestions: fb.ImprovementSuggestions,
		SystemHealth: SystemHealth{
			ComponentsReady: 12,
			StoreMode:       storeMode,
		},
		UsageMetrics: UsageMetrics{
			TotalFeedbackEntries: p.deps.Feedback.TotalEntries(),
		},
		StageLatency: p.deps.Metrics.StageSnapshot(),
	}
}
