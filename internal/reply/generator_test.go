package reply

import (
	"context"
	"errors"
	"testing"
	"time"

	"cockpit/internal/brain"
)

type stubAdapter struct {
	text string
	err  error
}

func (s *stubAdapter) Complete(_ context.Context, _ brain.Request) (brain.Response, error) {
	return brain.Response{Text: s.text}, s.err
}

func TestEmptyInputShortCircuits(t *testing.T) {
	g := NewGenerator(&stubAdapter{err: errors.New("must not be called")}, time.Second)
	got, fellBack := g.Generate(context.Background(), "   ", "u1")
	if got != clarificationReply {
		t.Fatalf("Generate = %q, want clarification reply", got)
	}
	if fellBack {
		t.Fatalf("clarification path should not count as fallback")
	}
}

func TestBackendReplyTrimmed(t *testing.T) {
	g := NewGenerator(&stubAdapter{text: "  sure, done.  "}, time.Second)
	got, fellBack := g.Generate(context.Background(), "turn it up", "u1")
	if got != "sure, done." {
		t.Fatalf("Generate = %q, want trimmed backend reply", got)
	}
	if fellBack {
		t.Fatalf("live path reported fallback")
	}
}

func TestBackendErrorFallsBackDeterministically(t *testing.T) {
	g := NewGenerator(&stubAdapter{err: errors.New("backend down")}, time.Second)
	first, fellBack := g.Generate(context.Background(), "hello", "u1")
	if !fellBack {
		t.Fatalf("expected fallback on backend error")
	}
	second, _ := g.Generate(context.Background(), "hello", "u1")
	if first != second {
		t.Fatalf("fallback not deterministic: %q vs %q", first, second)
	}
	if first != brain.CannedReply("error", "hello") {
		t.Fatalf("fallback = %q, want canned error reply", first)
	}
}

func TestBlankBackendReply(t *testing.T) {
	g := NewGenerator(&stubAdapter{text: "   "}, time.Second)
	got, _ := g.Generate(context.Background(), "hello", "u1")
	if got != "I am here if you need anything else." {
		t.Fatalf("Generate = %q, want blank-reply filler", got)
	}
}

func TestNilBackendUsesCanned(t *testing.T) {
	g := NewGenerator(nil, time.Second)
	got, fellBack := g.Generate(context.Background(), "hello", "u1")
	if got != brain.CannedReply("u1", "hello") {
		t.Fatalf("Generate = %q, want canned reply keyed by user", got)
	}
	if fellBack {
		t.Fatalf("canned backend should not report fallback")
	}
}
