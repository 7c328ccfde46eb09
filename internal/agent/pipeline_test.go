package agent

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"cockpit/internal/brain"
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

var metricsSeq atomic.Int64

// newTestPipeline builds a pipeline on in-memory stores with no completion
// backend configured, so replies come from the deterministic canned path.
func newTestPipeline(t *testing.T) (*Pipeline, memory.Store) {
	t.Helper()
	store := memory.NewInMemoryStore()
	metrics := observability.NewMetrics(fmt.Sprintf("test_agent_%d", metricsSeq.Add(1)))
	p := New(Deps{
		Sessions:  session.NewManager(time.Minute),
		Memory:    store,
		Profiles:  profilestore.NewInMemoryStore(),
		Commands:  command.NewMatcher(),
		Intents:   nlu.NewClassifier(),
		Language:  language.NewNormalizer(),
		Replies:   reply.NewGenerator(brain.NewCannedAdapter(), time.Second),
		Recommend: recommend.NewEngine(),
		Feedback:  feedback.NewProcessor(),
		Tasks:     tasks.NewManager(),
		Schedule:  schedule.NewScheduler(),
		Metrics:   metrics,
	})
	return p, store
}

func logLen(t *testing.T, store memory.Store, userID string) int {
	t.Helper()
	entries, err := store.Recent(context.Background(), userID, 0)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	return len(entries)
}

func TestCommandTurnShortCircuits(t *testing.T) {
	p, store := newTestPipeline(t)

	res := p.ProcessTurn(context.Background(), "lights on", "u1")
	if res.Kind != TurnCommand {
		t.Fatalf("Kind = %q, want command result", res.Kind)
	}
	if res.Command != "lights_on" || res.CommandResult != "Turning the lights on." {
		t.Fatalf("command result = (%q, %q)", res.Command, res.CommandResult)
	}
	if n := logLen(t, store, "u1"); n != 0 {
		t.Fatalf("log length after command turn = %d, want 0", n)
	}
}

func TestConversationTurnLogsTwoEntries(t *testing.T) {
	p, store := newTestPipeline(t)

	res := p.ProcessTurn(context.Background(), "how are you today", "u1")
	if res.Kind != TurnConversation {
		t.Fatalf("Kind = %q, want conversation result", res.Kind)
	}
	if res.Reply == "" {
		t.Fatalf("conversation turn produced empty reply")
	}

	entries, err := store.Recent(context.Background(), "u1", 0)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("log length = %d, want 2", len(entries))
	}
	if entries[0].Role != memory.RoleUser || entries[1].Role != memory.RoleAgent {
		t.Fatalf("roles = [%q, %q], want [user, agent]", entries[0].Role, entries[1].Role)
	}
	if entries[0].Text != "how are you today" {
		t.Fatalf("user entry = %q, want raw input", entries[0].Text)
	}
	if entries[1].Text != res.Reply {
		t.Fatalf("agent entry = %q, want localized reply %q", entries[1].Text, res.Reply)
	}
}

func TestFallbackReplyDeterministic(t *testing.T) {
	p, store := newTestPipeline(t)

	first := p.ProcessTurn(context.Background(), "hello", "u1")
	second := p.ProcessTurn(context.Background(), "hello", "u1")
	if first.Reply != second.Reply {
		t.Fatalf("fallback replies differ: %q vs %q", first.Reply, second.Reply)
	}
	if n := logLen(t, store, "u1"); n != 4 {
		t.Fatalf("log length after two turns = %d, want 4", n)
	}
}

func TestEmptyInputGetsClarification(t *testing.T) {
	p, _ := newTestPipeline(t)

	res := p.ProcessTurn(context.Background(), "", "u1")
	if res.Kind != TurnConversation {
		t.Fatalf("Kind = %q, want conversation result", res.Kind)
	}
	if res.Reply != "I didn't quite catch that. Could you repeat it?" {
		t.Fatalf("Reply = %q, want fixed clarification", res.Reply)
	}
}

func TestRecommendationsFollowRuleOrder(t *testing.T) {
	p, _ := newTestPipeline(t)
	p.UpdatePreferences(context.Background(), "u1", map[string]string{"focus": "productivity"})

	res := p.ProcessTurn(context.Background(), "call John at 3pm", "u1")
	if len(res.Recommendations) != 2 {
		t.Fatalf("Recommendations = %v, want 2 entries", res.Recommendations)
	}
	if res.Recommendations[0] != "Block 25 minutes for focused work." ||
		res.Recommendations[1] != "Prepare a quick agenda for your call." {
		t.Fatalf("Recommendations = %v, wrong order or content", res.Recommendations)
	}
}

func TestLocalizedReplyFlagged(t *testing.T) {
	p, store := newTestPipeline(t)
	p.UpdatePreferences(context.Background(), "u1", map[string]string{"language": "es"})

	res := p.ProcessTurn(context.Background(), "hello there", "u1")
	if !res.PreferencesApplied {
		t.Fatalf("PreferencesApplied = false, want true for non-English preference")
	}
	if res.Reply[:5] != "[es] " {
		t.Fatalf("Reply = %q, want language marker prefix", res.Reply)
	}

	entries, _ := store.Recent(context.Background(), "u1", 0)
	if entries[1].Text != res.Reply {
		t.Fatalf("logged agent entry %q differs from localized reply %q", entries[1].Text, res.Reply)
	}
}

func TestMemoryFailureDoesNotAbortTurn(t *testing.T) {
	p, _ := newTestPipeline(t)
	p.deps.Memory = failingStore{}

	res := p.ProcessTurn(context.Background(), "hello", "u1")
	if res.Kind != TurnConversation || res.Reply == "" {
		t.Fatalf("turn should succeed despite store failures, got %+v", res)
	}
}

func TestSessionLifecycle(t *testing.T) {
	p, _ := newTestPipeline(t)
	ctx := context.Background()

	if _, err := p.StartSession("u1", "s1"); err != nil {
		t.Fatalf("StartSession() error = %v", err)
	}
	if _, err := p.StartSession("u2", "s1"); !errors.Is(err, session.ErrActive) {
		t.Fatalf("duplicate StartSession = %v, want ErrActive", err)
	}

	p.ProcessTurn(ctx, "hello", "u1")

	sum, err := p.EndSession(ctx, "s1")
	if err != nil {
		t.Fatalf("EndSession() error = %v", err)
	}
	if sum.LogEntries != 2 {
		t.Fatalf("LogEntries = %d, want 2", sum.LogEntries)
	}

	if _, err := p.EndSession(ctx, "ghost"); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("EndSession unknown = %v, want ErrNotFound", err)
	}
}

func TestProfileAggregation(t *testing.T) {
	p, _ := newTestPipeline(t)
	ctx := context.Background()

	p.deps.Feedback.SubmitRating("u1", 3, "")
	p.deps.Feedback.SubmitRating("u1", 5, "")
	p.deps.Tasks.Add("u1", "write notes")
	p.UpdatePreferences(ctx, "u1", map[string]string{"focus": "productivity"})

	prof := p.Profile(ctx, "u1")
	if prof.SatisfactionScore != 4.0 {
		t.Fatalf("SatisfactionScore = %v, want 4.0", prof.SatisfactionScore)
	}
	if prof.TaskSummary.Pending != 1 {
		t.Fatalf("TaskSummary = %+v, want 1 pending", prof.TaskSummary)
	}
	if len(prof.EventSummary.Upcoming) != 1 || prof.EventSummary.Upcoming[0].Title != "No upcoming events" {
		t.Fatalf("EventSummary = %+v, want synthetic placeholder", prof.EventSummary)
	}
	if prof.Personalization.Preferences["focus"] != "productivity" {
		t.Fatalf("Personalization = %+v, want stored preference", prof.Personalization)
	}
	if prof.SystemData["focus"] != "productivity" {
		t.Fatalf("SystemData = %v, want persisted preferences", prof.SystemData)
	}
}

func TestProfileStoreFailureDegrades(t *testing.T) {
	p, _ := newTestPipeline(t)
	p.deps.Profiles = failingProfiles{}

	prof := p.Profile(context.Background(), "u1")
	if prof.UserID != "u1" || len(prof.SystemData) != 0 {
		t.Fatalf("Profile = %+v, want empty system data on store failure", prof)
	}
}

func TestGenerateReport(t *testing.T) {
	p, _ := newTestPipeline(t)
	p.deps.Feedback.SubmitRating("u1", 4, "")
	p.deps.Feedback.SubmitText("u2", "nice")

	r := p.GenerateReport("in-memory")
	if r.ActiveUsers != 2 {
		t.Fatalf("ActiveUsers = %d, want 2", r.ActiveUsers)
	}
	if r.FeedbackAnalytics.TotalEntries != 2 {
		t.Fatalf("TotalEntries = %d, want 2", r.FeedbackAnalytics.TotalEntries)
	}
	if r.SystemHealth.StoreMode != "in-memory" {
		t.Fatalf("StoreMode = %q", r.SystemHealth.StoreMode)
	}
	if len(r.ImprovementSuggestions) == 0 {
		t.Fatalf("report missing improvement suggestions")
	}
}

func TestSubmitFeedbackKinds(t *testing.T) {
	p, _ := newTestPipeline(t)

	if err := p.SubmitFeedback("u1", FeedbackSubmission{Kind: feedback.KindRating, Rating: 9}); err != nil {
		t.Fatalf("SubmitFeedback rating error = %v", err)
	}
	if got := p.deps.Feedback.SatisfactionScore("u1"); got != 5.0 {
		t.Fatalf("score = %v, want clamped 5.0", got)
	}

	if err := p.SubmitFeedback("u1", FeedbackSubmission{Kind: "telepathy"}); err == nil {
		t.Fatalf("SubmitFeedback should reject unknown kinds")
	}
}

func TestMaintenancePrunesOldEntries(t *testing.T) {
	p, store := newTestPipeline(t)
	ctx := context.Background()

	old := memory.Entry{UserID: "u1", Role: memory.RoleUser, Text: "ancient", CreatedAt: time.Now().UTC().Add(-60 * 24 * time.Hour)}
	if err := store.Append(ctx, old); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	p.ProcessTurn(ctx, "hello", "u1")

	pruned, err := p.Maintenance(ctx)
	if err != nil {
		t.Fatalf("Maintenance() error = %v", err)
	}
	if pruned != 1 {
		t.Fatalf("pruned = %d, want 1", pruned)
	}
	if n := logLen(t, store, "u1"); n != 2 {
		t.Fatalf("log length after maintenance = %d, want 2", n)
	}
}

type failingStore struct{}

func (failingStore) Append(context.Context, memory.Entry) error { return errors.New("store down") }
func (failingStore) Recent(context.Context, string, int) ([]memory.Entry, error) {
	return nil, errors.New("store down")
}
func (failingStore) CountBetween(context.Context, string, time.Time, time.Time) (int, error) {
	return 0, errors.New("store down")
}
func (failingStore) PruneBefore(context.Context, time.Time) (int, error) {
	return 0, errors.New("store down")
}
func (failingStore) Close() error { return nil }

type failingProfiles struct{}

func (failingProfiles) UserData(context.Context, string) (profilestore.Document, error) {
	return profilestore.Document{}, errors.New("store down")
}
func (failingProfiles) SavePreferences(context.Context, string, map[string]string) error {
	return errors.New("store down")
}
func (failingProfiles) Close() error { return nil }
