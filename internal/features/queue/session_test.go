package queue

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestLoadClearsSelection(t *testing.T) {
	src := &fakeSource{page: pageOf("q-1", "q-2", "q-3")}
	s := newSession(src, zap.NewNop())

	if _, err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	s.SelectAll()
	if s.SelectionSummary().SelectedCount != 3 {
		t.Fatalf("selection not populated")
	}

	// Any successful load, including a plain refresh, clears the selection
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if got := s.SelectionSummary().SelectedCount; got != 0 {
		t.Errorf("selection count = %d after refresh, want 0", got)
	}
}

func TestFailedLoadKeepsSelection(t *testing.T) {
	src := &fakeSource{page: pageOf("q-1", "q-2")}
	s := newSession(src, zap.NewNop())

	if _, err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	s.Toggle("q-1")

	src.mu.Lock()
	src.err = errors.New("down")
	src.page = nil
	src.mu.Unlock()

	if _, err := s.Load(context.Background()); err == nil {
		t.Fatalf("expected load failure")
	}

	// The page did not change, so the working set survives
	if got := s.SelectionSummary().SelectedCount; got != 1 {
		t.Errorf("selection count = %d after failed load, want 1", got)
	}
}

func TestSelectedItemsPageOrder(t *testing.T) {
	src := &fakeSource{page: pageOf("q-1", "q-2", "q-3")}
	s := newSession(src, zap.NewNop())
	s.Load(context.Background())

	s.Toggle("q-3")
	s.Toggle("q-1")

	ids := s.SelectedIDs()
	if len(ids) != 2 || ids[0] != "q-1" || ids[1] != "q-3" {
		t.Errorf("ids = %v, want page order [q-1 q-3]", ids)
	}
}

func TestSessionManagerIsolation(t *testing.T) {
	src := &fakeSource{page: pageOf("q-1")}
	m := NewSessionManager(src, zap.NewNop())

	a := m.Session("reviewer-a")
	b := m.Session("reviewer-b")
	if a == b {
		t.Fatalf("sessions shared across reviewers")
	}
	if m.Session("reviewer-a") != a {
		t.Errorf("session not stable per reviewer")
	}

	a.Load(context.Background())
	a.SelectAll()
	if b.SelectionSummary().SelectedCount != 0 {
		t.Errorf("selection leaked across sessions")
	}
}
