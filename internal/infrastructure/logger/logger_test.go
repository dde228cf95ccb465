package logger

import "testing"

func TestSanitizeKVs(t *testing.T) {
	got := sanitizeKVs([]interface{}{"project_id", "p-1", "access_token", "TEST-123", "dangling"})

	if len(got) != 5 {
		t.Fatalf("expected 5 elements, got %d: %v", len(got), got)
	}
	if got[1] != "p-1" {
		t.Fatalf("expected project id untouched, got %v", got[1])
	}
	if got[3] != "[REDACTED]" {
		t.Fatalf("expected token redacted, got %v", got[3])
	}
	if got[4] != "dangling" {
		t.Fatalf("expected trailing key kept, got %v", got[4])
	}
}

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"dev", "prod"} {
		l, err := New(mode)
		if err != nil {
			t.Fatalf("New(%q) error: %v", mode, err)
		}
		l.With("component", "test").Debug("hello", "k", "v")
	}
	NewNop().Info("discarded")
}
