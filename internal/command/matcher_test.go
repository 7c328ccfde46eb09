package command

import "testing"

func TestMatchKnownCommands(t *testing.T) {
	m := NewMatcher()

	cases := []struct {
		input    string
		name     string
		response string
	}{
		{"lights on", "lights_on", "Turning the lights on."},
		{"please turn the LIGHTS ON now", "lights_on", "Turning the lights on."},
		{"Lights Off", "lights_off", "Turning the lights off."},
		{"could you open dashboard for me", "open_dashboard", "Opening the cockpit dashboard."},
	}
	for _, tc := range cases {
		got, ok := m.Match(tc.input)
		if !ok {
			t.Fatalf("Match(%q) found no command", tc.input)
		}
		if got.Name != tc.name || got.Response != tc.response {
			t.Fatalf("Match(%q) = (%q, %q), want (%q, %q)", tc.input, got.Name, got.Response, tc.name, tc.response)
		}
	}
}

func TestMatchNoCommand(t *testing.T) {
	m := NewMatcher()
	if _, ok := m.Match("what is the weather like"); ok {
		t.Fatalf("Match should not detect a command in plain conversation")
	}
	if _, ok := m.Match(""); ok {
		t.Fatalf("Match should not detect a command in empty input")
	}
}

func TestMatchOrderIsDeterministic(t *testing.T) {
	m := NewMatcher()
	// Input containing two triggers resolves to the first registered one.
	got, ok := m.Match("lights on then lights off")
	if !ok || got.Name != "lights_on" {
		t.Fatalf("Match = (%+v, %v), want lights_on first", got, ok)
	}
}
