package profilestore

import (
	"context"
	"testing"
)

func TestUserDataEmpty(t *testing.T) {
	s := NewInMemoryStore()
	doc, err := s.UserData(context.Background(), "u1")
	if err != nil {
		t.Fatalf("UserData() error = %v", err)
	}
	if doc.UserID != "u1" || len(doc.Preferences) != 0 {
		t.Fatalf("UserData = %+v, want empty document", doc)
	}
}

func TestSavePreferencesMerges(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	if err := s.SavePreferences(ctx, "u1", map[string]string{"language": "es"}); err != nil {
		t.Fatalf("SavePreferences() error = %v", err)
	}
	if err := s.SavePreferences(ctx, "u1", map[string]string{"focus": "productivity"}); err != nil {
		t.Fatalf("SavePreferences() error = %v", err)
	}

	doc, err := s.UserData(ctx, "u1")
	if err != nil {
		t.Fatalf("UserData() error = %v", err)
	}
	if doc.Preferences["language"] != "es" || doc.Preferences["focus"] != "productivity" {
		t.Fatalf("Preferences = %v, want merged values", doc.Preferences)
	}
}

func TestDocumentsAreCopies(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()
	_ = s.SavePreferences(ctx, "u1", map[string]string{"language": "es"})

	doc, _ := s.UserData(ctx, "u1")
	doc.Preferences["language"] = "mutated"

	again, _ := s.UserData(ctx, "u1")
	if again.Preferences["language"] != "es" {
		t.Fatalf("store state mutated through returned document")
	}
}
