package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cockpit/internal/agent"
	"cockpit/internal/brain"
	"cockpit/internal/command"
	"cockpit/internal/config"
	"cockpit/internal/feedback"
	"cockpit/internal/httpapi"
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

type BuildResult struct {
	Config    config.Config
	API       *httpapi.Server
	Pipeline  *agent.Pipeline
	Sessions  *session.Manager
	Metrics   *observability.Metrics
	StoreMode string
	BrainMode string

	// Cleanup should be called on shutdown to release external resources.
	Cleanup func() error
}

func Build(ctx context.Context, cfg config.Config) (*BuildResult, error) {
	metrics := observability.NewMetrics(cfg.MetricsNamespace)

	memoryStore, err := memory.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("memory store init failed: %w", err)
	}

	profiles, err := profilestore.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		_ = memoryStore.Close()
		return nil, fmt.Errorf("profile store init failed: %w", err)
	}

	backend, brainMode, err := brain.NewAdapter(brain.Config{
		Mode:   cfg.BrainMode,
		APIKey: cfg.CompletionKey,
		Model:  cfg.CompletionModel,
	})
	if err != nil {
		_ = profiles.Close()
		_ = memoryStore.Close()
		return nil, fmt.Errorf("brain adapter init failed: %w", err)
	}

	storeMode := "in-memory"
	if strings.TrimSpace(cfg.DatabaseURL) != "" {
		storeMode = "postgres"
	}

	sessions := session.NewManager(cfg.SessionInactivityTimeout)
	sessions.SetExpireHook(func(_ *session.Session) {
		metrics.SessionEvents.WithLabelValues("expired").Inc()
		metrics.ActiveSessions.Set(float64(sessions.ActiveCount()))
	})

	pipeline := agent.New(agent.Deps{
		Sessions:  sessions,
		Memory:    memoryStore,
		Profiles:  profiles,
		Commands:  command.NewMatcher(),
		Intents:   nlu.NewClassifier(),
		Language:  language.NewNormalizer(),
		Replies:   reply.NewGenerator(backend, cfg.ReplyTimeout),
		Recommend: recommend.NewEngine(),
		Feedback:  feedback.NewProcessor(),
		Tasks:     tasks.NewManager(),
		Schedule:  schedule.NewScheduler(),
		Metrics:   metrics,

		StoreTimeout:    cfg.StoreTimeout,
		MemoryRetention: cfg.MemoryRetention,
	})

	// The status endpoint reports the resolved backend, not the "auto" alias.
	cfg.BrainMode = brainMode

	api := httpapi.New(cfg, pipeline, sessions, metrics, storeMode)

	cleanup := func() error {
		var errs []string
		if err := profiles.Close(); err != nil {
			errs = append(errs, err.Error())
		}
		if err := memoryStore.Close(); err != nil {
			errs = append(errs, err.Error())
		}
		if len(errs) > 0 {
			return fmt.Errorf("%s", strings.Join(errs, "; "))
		}
		return nil
	}

	return &BuildResult{
		Config:    cfg,
		API:       api,
		Pipeline:  pipeline,
		Sessions:  sessions,
		Metrics:   metrics,
		StoreMode: storeMode,
		BrainMode: brainMode,
		Cleanup:   cleanup,
	}, nil
}

// StartBackground launches the session janitor and the periodic retention
// sweep over the episodic log. Both stop when ctx is cancelled.
func (b *BuildResult) StartBackground(ctx context.Context) {
	b.Sessions.StartJanitor(ctx, 5*time.Second)

	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_, _ = b.Pipeline.Maintenance(ctx)
			}
		}
	}()
}
