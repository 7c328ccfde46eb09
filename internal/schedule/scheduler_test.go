package schedule

import (
	"testing"
	"time"
)

func TestSummarizeEmptyCalendar(t *testing.T) {
	s := NewScheduler()
	sum := s.Summarize("u1")
	if len(sum.Upcoming) != 1 {
		t.Fatalf("Upcoming len = %d, want synthetic placeholder", len(sum.Upcoming))
	}
	if sum.Upcoming[0].Title != "No upcoming events" {
		t.Fatalf("placeholder title = %q", sum.Upcoming[0].Title)
	}
}

func TestSummarizeCapsAtFive(t *testing.T) {
	s := NewScheduler()
	now := time.Now()
	for i := 0; i < 7; i++ {
		s.AddEvent("u1", "event", now.Add(time.Duration(i)*time.Hour))
	}
	sum := s.Summarize("u1")
	if len(sum.Upcoming) != 5 {
		t.Fatalf("Upcoming len = %d, want 5", len(sum.Upcoming))
	}
}
