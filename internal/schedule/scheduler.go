package schedule

import (
	"sync"
	"time"
)

// Event is one upcoming calendar entry for a user.
type Event struct {
	Title string    `json:"title"`
	Time  time.Time `json:"time"`
}

// Summary lists the next few events for the profile read-model.
type Summary struct {
	Upcoming []Event `json:"upcoming"`
}

const maxUpcoming = 5

// Scheduler keeps a minimal list of upcoming events per user.
type Scheduler struct {
	mu     sync.RWMutex
	events map[string][]Event
}

func NewScheduler() *Scheduler {
	return &Scheduler{events: make(map[string][]Event)}
}

func (s *Scheduler) AddEvent(userID, title string, when time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[userID] = append(s.events[userID], Event{Title: title, Time: when.UTC()})
}

// Summarize returns up to five events. An empty calendar yields a single
// synthetic placeholder so the UI always has something to render.
func (s *Scheduler) Summarize(userID string) Summary {
	s.mu.RLock()
	events := make([]Event, len(s.events[userID]))
	copy(events, s.events[userID])
	s.mu.RUnlock()

	if len(events) == 0 {
		events = []Event{{
			Title: "No upcoming events",
			Time:  time.Now().UTC().Add(4 * time.Hour),
		}}
	}
	if len(events) > maxUpcoming {
		events = events[:maxUpcoming]
	}
	return Summary{Upcoming: events}
}
