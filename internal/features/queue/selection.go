package queue

import (
	"errors"

	"go-approvals/internal/classify"
)

var ErrNotOnPage = errors.New("item is not on the currently loaded page")

// Selection is the reviewer's working set of chosen quotations within the
// loaded page. It is always a subset of the page's IDs and is force-cleared
// whenever the page contents change.
type Selection struct {
	ids map[string]struct{}
}

func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// Toggle adds the id if absent, removes it if present. The id must belong
// to the loaded page.
func (s *Selection) Toggle(id string, loaded []ApprovalItem) error {
	found := false
	for i := range loaded {
		if loaded[i].QuotationID == id {
			found = true
			break
		}
	}
	if !found {
		return ErrNotOnPage
	}

	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
	} else {
		s.ids[id] = struct{}{}
	}
	return nil
}

// SelectAll has toggle semantics: if every loaded item is already selected
// the selection is cleared, otherwise every loaded item is selected.
func (s *Selection) SelectAll(loaded []ApprovalItem) {
	if len(loaded) > 0 && len(s.ids) == len(loaded) {
		s.Clear()
		return
	}
	s.ids = make(map[string]struct{}, len(loaded))
	for i := range loaded {
		s.ids[loaded[i].QuotationID] = struct{}{}
	}
}

// Clear empties the selection
func (s *Selection) Clear() {
	s.ids = make(map[string]struct{})
}

// Has reports whether the id is selected
func (s *Selection) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Count returns the number of selected items
func (s *Selection) Count() int {
	return len(s.ids)
}

// Items returns the selected items in page order
func (s *Selection) Items(loaded []ApprovalItem) []ApprovalItem {
	out := make([]ApprovalItem, 0, len(s.ids))
	for i := range loaded {
		if s.Has(loaded[i].QuotationID) {
			out = append(out, loaded[i])
		}
	}
	return out
}

// IDs returns the selected quotation IDs in page order
func (s *Selection) IDs(loaded []ApprovalItem) []string {
	out := make([]string, 0, len(s.ids))
	for i := range loaded {
		if s.Has(loaded[i].QuotationID) {
			out = append(out, loaded[i].QuotationID)
		}
	}
	return out
}

// Summary is the read-only aggregate view of the selection. UrgentCount is
// computed over the loaded page, not the selection: it is a queue-health
// indicator.
type Summary struct {
	SelectedCount       int     `json:"selected_count"`
	SelectedTotalAmount float64 `json:"selected_total_amount"`
	IsAllSelected       bool    `json:"is_all_selected"`
	IsPartiallySelected bool    `json:"is_partially_selected"`
	UrgentCount         int     `json:"urgent_count"`
}

// Summarize computes the aggregates for the given loaded page
func (s *Selection) Summarize(loaded []ApprovalItem) Summary {
	sum := Summary{SelectedCount: len(s.ids)}
	for i := range loaded {
		if s.Has(loaded[i].QuotationID) {
			sum.SelectedTotalAmount += loaded[i].TotalAmount
		}
		if classify.IsUrgent(loaded[i].UrgencyLevel) {
			sum.UrgentCount++
		}
	}
	sum.IsAllSelected = len(loaded) > 0 && len(s.ids) == len(loaded)
	sum.IsPartiallySelected = len(s.ids) > 0 && len(s.ids) < len(loaded)
	return sum
}
