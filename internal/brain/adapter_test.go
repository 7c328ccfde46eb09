package brain

import (
	"context"
	"testing"
)

func TestNewAdapterModes(t *testing.T) {
	cases := []struct {
		name     string
		cfg      Config
		wantMode string
		wantErr  bool
	}{
		{name: "auto without key", cfg: Config{Mode: "auto"}, wantMode: "canned"},
		{name: "auto with key", cfg: Config{Mode: "auto", APIKey: "sk-test"}, wantMode: "openai"},
		{name: "explicit canned", cfg: Config{Mode: "canned"}, wantMode: "canned"},
		{name: "openai without key", cfg: Config{Mode: "openai"}, wantErr: true},
		{name: "unknown mode", cfg: Config{Mode: "telepathy"}, wantErr: true},
		{name: "empty defaults to auto", cfg: Config{}, wantMode: "canned"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			adapter, mode, err := NewAdapter(tc.cfg)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("NewAdapter(%+v) expected error", tc.cfg)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewAdapter(%+v) error = %v", tc.cfg, err)
			}
			if adapter == nil {
				t.Fatalf("NewAdapter(%+v) returned nil adapter", tc.cfg)
			}
			if mode != tc.wantMode {
				t.Fatalf("mode = %q, want %q", mode, tc.wantMode)
			}
		})
	}
}

func TestCannedReplyDeterministic(t *testing.T) {
	first := CannedReply("u1", "hello")
	second := CannedReply("u1", "hello")
	if first != second {
		t.Fatalf("CannedReply not deterministic: %q vs %q", first, second)
	}

	found := false
	for _, r := range cannedResponses {
		if r == first {
			found = true
		}
	}
	if !found {
		t.Fatalf("CannedReply returned %q, not in the fixed set", first)
	}
}

func TestCannedAdapterComplete(t *testing.T) {
	a := NewCannedAdapter()
	resp, err := a.Complete(context.Background(), Request{UserID: "u1", InputText: "hi"})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if resp.Text != CannedReply("u1", "hi") {
		t.Fatalf("Complete() = %q, want canned reply", resp.Text)
	}
}

func TestCannedAdapterHonorsCancellation(t *testing.T) {
	a := NewCannedAdapter()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := a.Complete(ctx, Request{UserID: "u1", InputText: "hi"}); err == nil {
		t.Fatalf("Complete with canceled context should fail")
	}
}
