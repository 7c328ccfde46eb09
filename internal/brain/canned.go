package brain

import (
	"context"
	"hash/fnv"
)

var cannedResponses = []string{
	"I am ready to help you with your tasks.",
	"Let's work together to get things done.",
	"How can I support you today?",
}

// CannedAdapter provides deterministic offline replies when no completion
// backend is configured. It never fails.
type CannedAdapter struct{}

func NewCannedAdapter() *CannedAdapter { return &CannedAdapter{} }

func (a *CannedAdapter) Complete(ctx context.Context, req Request) (Response, error) {
	select {
	case <-ctx.Done():
		return Response{}, ctx.Err()
	default:
	}
	return Response{Text: CannedReply(req.UserID, req.InputText)}, nil
}

// CannedReply selects a fixed response as a pure function of (tag, text), so
// repeated identical inputs always produce the same reply.
func CannedReply(tag, text string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(tag))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(text))
	return cannedResponses[h.Sum32()%uint32(len(cannedResponses))]
}
