package nlu

import (
	"reflect"
	"testing"
)

func TestClassifyIntents(t *testing.T) {
	c := NewClassifier()

	cases := []struct {
		input  string
		intent string
	}{
		{"remind me to call John", "reminder"},
		{"set up a meeting for tomorrow", "schedule"},
		{"what is the status of my tasks", "status"},
		{"hello there", "conversation"},
		{"", "conversation"},
	}
	for _, tc := range cases {
		got := c.Classify(tc.input)
		if got.Intent != tc.intent {
			t.Fatalf("Classify(%q).Intent = %q, want %q", tc.input, got.Intent, tc.intent)
		}
	}
}

func TestClassifyRuleOrder(t *testing.T) {
	c := NewClassifier()
	// Overlaps both reminder and schedule sets; reminder is declared first.
	got := c.Classify("remind me about the meeting")
	if got.Intent != "reminder" {
		t.Fatalf("Intent = %q, want %q", got.Intent, "reminder")
	}
}

func TestClassifyKeywordsTruncated(t *testing.T) {
	c := NewClassifier()
	got := c.Classify("one two three four five six seven")
	want := []string{"one", "two", "three", "four", "five"}
	if !reflect.DeepEqual(got.Keywords, want) {
		t.Fatalf("Keywords = %v, want %v", got.Keywords, want)
	}
}

func TestClassifyTimeEntity(t *testing.T) {
	c := NewClassifier()
	got := c.Classify("call John at 3 PM")
	if got.Entities["time"] != "soon" {
		t.Fatalf("Entities = %v, want time=soon", got.Entities)
	}
	got = c.Classify("call John later today")
	if _, ok := got.Entities["time"]; ok {
		t.Fatalf("Entities = %v, want no time marker", got.Entities)
	}
}
