package ws

import "testing"

func TestHubAddRemoveCount(t *testing.T) {
	h := NewHub()
	if h.Count() != 0 {
		t.Fatalf("expected empty hub, got %d", h.Count())
	}

	h.Add("a", nil)
	h.Add("b", nil)
	if h.Count() != 2 {
		t.Errorf("expected 2 connections, got %d", h.Count())
	}

	h.Remove("a")
	if h.Count() != 1 {
		t.Errorf("expected 1 connection after remove, got %d", h.Count())
	}

	// Removing an unknown id is a no-op.
	h.Remove("zzz")
	if h.Count() != 1 {
		t.Errorf("expected 1 connection, got %d", h.Count())
	}
}
