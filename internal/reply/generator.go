package reply

import (
	"context"
	"strings"
	"time"

	"cockpit/internal/brain"
)

const clarificationReply = "I didn't quite catch that. Could you repeat it?"

// Generator produces the agent reply for a conversational turn. It always
// succeeds: backend failures degrade to a deterministic canned reply, and
// empty input short-circuits to a fixed clarification prompt.
type Generator struct {
	backend brain.Adapter
	timeout time.Duration
}

func NewGenerator(backend brain.Adapter, timeout time.Duration) *Generator {
	if backend == nil {
		backend = brain.NewCannedAdapter()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Generator{backend: backend, timeout: timeout}
}

// Generate returns a reply for the given text. The second return value
// reports whether the backend failed and the fallback path was taken.
func (g *Generator) Generate(ctx context.Context, text, userID string) (string, bool) {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return clarificationReply, false
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.backend.Complete(ctx, brain.Request{UserID: userID, InputText: cleaned})
	if err != nil {
		return brain.CannedReply("error", cleaned), true
	}
	if strings.TrimSpace(resp.Text) == "" {
		return "I am here if you need anything else.", false
	}
	return strings.TrimSpace(resp.Text), false
}
