package protocol

import (
	"errors"
	"testing"
)

func TestParseClientMessageUtterance(t *testing.T) {
	raw := []byte(`{"type":"client_utterance","session_id":"s1","text":"lights on","ts_ms":123}`)
	msg, err := ParseClientMessage(raw)
	if err != nil {
		t.Fatalf("ParseClientMessage() error = %v", err)
	}

	utt, ok := msg.(ClientUtterance)
	if !ok {
		t.Fatalf("message type = %T, want ClientUtterance", msg)
	}
	if utt.SessionID != "s1" || utt.Text != "lights on" {
		t.Fatalf("unexpected utterance: %+v", utt)
	}
}

func TestParseClientMessageControl(t *testing.T) {
	raw := []byte(`{"type":"client_control","session_id":"s1","action":"end_session"}`)
	msg, err := ParseClientMessage(raw)
	if err != nil {
		t.Fatalf("ParseClientMessage() error = %v", err)
	}

	control, ok := msg.(ClientControl)
	if !ok {
		t.Fatalf("message type = %T, want ClientControl", msg)
	}
	if control.SessionID != "s1" || control.Action != "end_session" {
		t.Fatalf("unexpected client control: %+v", control)
	}
}

func TestParseClientMessageRejectsUnknownType(t *testing.T) {
	_, err := ParseClientMessage([]byte(`{"type":"wat"}`))
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("error = %v, want ErrUnsupportedType", err)
	}
}

func TestParseClientMessageRejectsMissingSession(t *testing.T) {
	_, err := ParseClientMessage([]byte(`{"type":"client_utterance","text":"hi"}`))
	if err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestParseClientMessageRejectsBadJSON(t *testing.T) {
	_, err := ParseClientMessage([]byte(`{`))
	if err == nil {
		t.Fatalf("expected envelope error")
	}
}
