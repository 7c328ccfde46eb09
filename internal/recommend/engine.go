package recommend

import (
	"strings"
	"sync"
)

const recentSuggestionLimit = 5

// PersonalizationSummary is the recommendation slice of the user profile.
type PersonalizationSummary struct {
	Preferences       map[string]string `json:"preferences"`
	RecentSuggestions []string          `json:"recent_suggestions"`
}

// Engine produces context-triggered suggestions from stored preferences.
// Every matching rule contributes, in declaration order; the generic
// dashboard hint only appears when nothing else matched.
type Engine struct {
	mu          sync.Mutex
	preferences map[string]map[string]string
	history     map[string][]string
}

func NewEngine() *Engine {
	return &Engine{
		preferences: make(map[string]map[string]string),
		history:     make(map[string][]string),
	}
}

// Generate returns the ordered suggestion list for a user and extends the
// user's suggestion history as a side effect.
func (e *Engine) Generate(userID, contextText string) []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	prefs := e.preferences[userID]

	var suggestions []string
	if prefs["focus"] == "productivity" {
		suggestions = append(suggestions, "Block 25 minutes for focused work.")
	}
	if strings.Contains(strings.ToLower(contextText), "call") {
		suggestions = append(suggestions, "Prepare a quick agenda for your call.")
	}
	if len(suggestions) == 0 {
		suggestions = append(suggestions, "Review your daily dashboard for new insights.")
	}

	e.history[userID] = append(e.history[userID], suggestions...)
	return suggestions
}

// UpdatePreferences merges new preference values for a user.
func (e *Engine) UpdatePreferences(userID string, prefs map[string]string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	stored, ok := e.preferences[userID]
	if !ok {
		stored = make(map[string]string, len(prefs))
		e.preferences[userID] = stored
	}
	for k, v := range prefs {
		stored[k] = v
	}
}

// Summarize exposes current preferences and the last few suggestions.
func (e *Engine) Summarize(userID string) PersonalizationSummary {
	e.mu.Lock()
	defer e.mu.Unlock()

	prefs := make(map[string]string, len(e.preferences[userID]))
	for k, v := range e.preferences[userID] {
		prefs[k] = v
	}

	hist := e.history[userID]
	if len(hist) > recentSuggestionLimit {
		hist = hist[len(hist)-recentSuggestionLimit:]
	}
	recent := make([]string, len(hist))
	copy(recent, hist)

	return PersonalizationSummary{Preferences: prefs, RecentSuggestions: recent}
}
