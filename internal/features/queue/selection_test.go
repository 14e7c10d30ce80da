package queue

import (
	"testing"
	"time"
)

func loadedPage(now time.Time) []ApprovalItem {
	items := []ApprovalItem{
		{QuotationID: "q-1", TotalAmount: 1000, SubmissionDate: now.Add(-8 * 24 * time.Hour)},
		{QuotationID: "q-2", TotalAmount: 2500, SubmissionDate: now.Add(-4 * 24 * time.Hour)},
		{QuotationID: "q-3", TotalAmount: 400, SubmissionDate: now.Add(-2 * time.Hour)},
	}
	for i := range items {
		items[i].Derive(now)
	}
	return items
}

func TestToggle(t *testing.T) {
	now := time.Now()
	loaded := loadedPage(now)
	s := NewSelection()

	if err := s.Toggle("q-1", loaded); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !s.Has("q-1") || s.Count() != 1 {
		t.Errorf("q-1 not selected")
	}

	if err := s.Toggle("q-1", loaded); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if s.Has("q-1") || s.Count() != 0 {
		t.Errorf("q-1 not deselected")
	}
}

func TestToggleRejectsUnloadedID(t *testing.T) {
	now := time.Now()
	s := NewSelection()
	if err := s.Toggle("q-99", loadedPage(now)); err != ErrNotOnPage {
		t.Errorf("err = %v, want ErrNotOnPage", err)
	}
}

func TestSelectAllToggleSemantics(t *testing.T) {
	now := time.Now()
	loaded := loadedPage(now)
	s := NewSelection()

	s.SelectAll(loaded)
	if s.Count() != 3 {
		t.Fatalf("count = %d after select all, want 3", s.Count())
	}

	// All already selected: invoking again clears
	s.SelectAll(loaded)
	if s.Count() != 0 {
		t.Errorf("count = %d after second select all, want 0", s.Count())
	}

	// Partial selection: select all completes it
	s.Toggle("q-2", loaded)
	s.SelectAll(loaded)
	if s.Count() != 3 {
		t.Errorf("count = %d after select all from partial, want 3", s.Count())
	}
}

func TestSummarize(t *testing.T) {
	now := time.Now()
	loaded := loadedPage(now)
	s := NewSelection()
	s.Toggle("q-1", loaded)
	s.Toggle("q-2", loaded)

	sum := s.Summarize(loaded)

	if sum.SelectedCount != 2 {
		t.Errorf("selectedCount = %d, want 2", sum.SelectedCount)
	}
	if sum.SelectedTotalAmount != 3500 {
		t.Errorf("selectedTotalAmount = %v, want 3500", sum.SelectedTotalAmount)
	}
	if !sum.IsPartiallySelected || sum.IsAllSelected {
		t.Errorf("partial/all flags wrong: %+v", sum)
	}
	// q-1 waited 8 days (CRITICAL), q-2 waited 4 days (HIGH): urgent count
	// covers the loaded page regardless of selection
	if sum.UrgentCount != 2 {
		t.Errorf("urgentCount = %d, want 2", sum.UrgentCount)
	}
}

func TestSummarizeEmptyPage(t *testing.T) {
	s := NewSelection()
	sum := s.Summarize(nil)
	if sum.IsAllSelected || sum.IsPartiallySelected || sum.SelectedCount != 0 {
		t.Errorf("empty page summary = %+v", sum)
	}
}
