package feedback

import (
	"math"
	"sync"
	"time"
)

// Kind tags a feedback entry variant.
type Kind string

const (
	KindRating Kind = "rating"
	KindText   Kind = "text"
	KindIssue  Kind = "issue"
)

// Entry is one piece of user feedback. The Kind selects which payload field
// is populated: Rating+Comment for ratings, Text for free-form feedback,
// Issue for structured issue reports.
type Entry struct {
	UserID    string            `json:"user_id"`
	Kind      Kind              `json:"kind"`
	Rating    int               `json:"rating,omitempty"`
	Comment   string            `json:"comment,omitempty"`
	Text      string            `json:"text,omitempty"`
	Issue     map[string]string `json:"issue,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// Analytics summarizes the whole feedback store.
type Analytics struct {
	TotalEntries  int     `json:"total_entries"`
	AverageRating float64 `json:"average_rating"`
}

// Report bundles analytics with improvement hints for the periodic report.
type Report struct {
	Analytics              Analytics `json:"analytics"`
	ImprovementSuggestions []string  `json:"improvement_suggestions"`
}

// Processor stores feedback entries in memory and provides analytics.
type Processor struct {
	mu      sync.RWMutex
	entries []Entry
}

func NewProcessor() *Processor {
	return &Processor{}
}

// SubmitRating records a rating, clamped to the [1,5] scale.
func (p *Processor) SubmitRating(userID string, rating int, comment string) {
	if rating < 1 {
		rating = 1
	}
	if rating > 5 {
		rating = 5
	}
	p.append(Entry{UserID: userID, Kind: KindRating, Rating: rating, Comment: comment})
}

// SubmitText records free-form feedback text.
func (p *Processor) SubmitText(userID, text string) {
	p.append(Entry{UserID: userID, Kind: KindText, Text: text})
}

// SubmitIssue records a structured issue report.
func (p *Processor) SubmitIssue(userID string, issue map[string]string) {
	p.append(Entry{UserID: userID, Kind: KindIssue, Issue: issue})
}

func (p *Processor) append(e Entry) {
	e.CreatedAt = time.Now().UTC()
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = append(p.entries, e)
}

// SatisfactionScore returns the mean rating for a user rounded to two
// decimals, or 0 when the user has no ratings.
func (p *Processor) SatisfactionScore(userID string) float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()

	sum, count := 0, 0
	for _, e := range p.entries {
		if e.UserID == userID && e.Kind == KindRating {
			sum += e.Rating
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return round2(float64(sum) / float64(count))
}

// ActiveUsers counts distinct users that submitted any feedback.
func (p *Processor) ActiveUsers() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	users := make(map[string]struct{}, len(p.entries))
	for _, e := range p.entries {
		users[e.UserID] = struct{}{}
	}
	return len(users)
}

// TotalEntries reports the size of the store.
func (p *Processor) TotalEntries() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.entries)
}

// GenerateReport computes store-wide analytics.
func (p *Processor) GenerateReport() Report {
	p.mu.RLock()
	total := len(p.entries)
	sum, count := 0, 0
	for _, e := range p.entries {
		if e.Kind == KindRating {
			sum += e.Rating
			count++
		}
	}
	p.mu.RUnlock()

	avg := 0.0
	if count > 0 {
		avg = round2(float64(sum) / float64(count))
	}
	return Report{
		Analytics: Analytics{TotalEntries: total, AverageRating: avg},
		ImprovementSuggestions: []string{
			"Offer more proactive reminders",
			"Provide clearer task summaries",
		},
	}
}

// RequestPrompt picks a feedback question matching the user's current score.
func (p *Processor) RequestPrompt(userID string) string {
	score := p.SatisfactionScore(userID)
	switch {
	case score == 0:
		return "How has your experience been so far?"
	case score >= 4:
		return "Thanks for the positive feedback! Anything else I can do?"
	default:
		return "I noticed things could be better. How may I improve?"
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
