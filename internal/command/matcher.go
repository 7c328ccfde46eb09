package command

import "strings"

// Command pairs a trigger phrase with its immediate cockpit response.
type Command struct {
	Phrase   string
	Name     string
	Response string
}

// Matcher detects the curated set of cockpit commands that bypass the
// conversational pipeline. Matching is deterministic: triggers are scanned
// in registration order and tested as case-insensitive substrings.
type Matcher struct {
	commands []Command
}

func NewMatcher() *Matcher {
	return &Matcher{
		commands: []Command{
			{Phrase: "lights on", Name: "lights_on", Response: "Turning the lights on."},
			{Phrase: "lights off", Name: "lights_off", Response: "Turning the lights off."},
			{Phrase: "open dashboard", Name: "open_dashboard", Response: "Opening the cockpit dashboard."},
		},
	}
}

// Match returns the first command whose trigger phrase occurs in text.
func (m *Matcher) Match(text string) (Command, bool) {
	lowered := strings.ToLower(strings.TrimSpace(text))
	for _, c := range m.commands {
		if strings.Contains(lowered, c.Phrase) {
			return c, true
		}
	}
	return Command{}, false
}
