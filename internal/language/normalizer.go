package language

import (
	"fmt"
	"strings"
	"sync"
)

// DefaultLanguage is the pass-through language: no transform is applied.
const DefaultLanguage = "en"

// InputResult describes a normalized user utterance.
type InputResult struct {
	ProcessedText    string `json:"processed_text"`
	DetectedLanguage string `json:"detected_language"`
	TargetLanguage   string `json:"target_language"`
}

// OutputResult describes a localized agent reply.
type OutputResult struct {
	FinalText string `json:"final_text"`
	Language  string `json:"language"`
}

// Normalizer tracks per-user language preferences and applies the cockpit's
// localization stub. Real translation is out of scope: non-English output is
// marked with a visible language tag instead. Localizing an already-localized
// string marks it again; callers should localize exactly once per turn.
type Normalizer struct {
	mu    sync.RWMutex
	prefs map[string]string
}

func NewNormalizer() *Normalizer {
	return &Normalizer{prefs: make(map[string]string)}
}

// SetPreference records the preferred language for a user. Last write wins.
func (n *Normalizer) SetPreference(userID, lang string) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		lang = DefaultLanguage
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.prefs[userID] = lang
}

// Preference returns the stored language for a user, defaulting to English.
func (n *Normalizer) Preference(userID string) string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if lang, ok := n.prefs[userID]; ok {
		return lang
	}
	return DefaultLanguage
}

// NormalizeInput prepares raw text for intent analysis and reply generation.
// With the default language this is an identity transform.
func (n *Normalizer) NormalizeInput(text, userID string) InputResult {
	return InputResult{
		ProcessedText:    text,
		DetectedLanguage: DefaultLanguage,
		TargetLanguage:   n.Preference(userID),
	}
}

// Localize renders a reply in the user's preferred language.
func (n *Normalizer) Localize(text, userID string) OutputResult {
	target := n.Preference(userID)
	if target == DefaultLanguage || text == "" {
		return OutputResult{FinalText: text, Language: target}
	}
	return OutputResult{FinalText: fmt.Sprintf("[%s] %s", target, text), Language: target}
}
