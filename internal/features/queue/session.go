package queue

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Session owns one reviewer's queue view: query state, loader, and
// selection. Sessions are never shared across reviewers. The mutex
// serializes the cooperative single-session model; it is released around
// the network call so a state change can supersede an in-flight load.
type Session struct {
	mu        sync.Mutex
	state     QueryState
	loader    *Loader
	selection *Selection
}

func newSession(source DataSource, log *zap.Logger) *Session {
	return &Session{
		state:     NewQueryState(),
		loader:    NewLoader(source, log),
		selection: NewSelection(),
	}
}

// Load fetches the page for the current state. A successful publish clears
// the selection: the page contents changed and the old working set may no
// longer be visible.
func (s *Session) Load(ctx context.Context) (View, error) {
	s.mu.Lock()
	q := s.state
	s.mu.Unlock()

	_, published, err := s.loader.Load(ctx, q)

	s.mu.Lock()
	defer s.mu.Unlock()
	if published && err == nil {
		s.selection.Clear()
	}
	return s.loader.Snapshot(), err
}

// Refresh re-issues the load with the unchanged current state. Used after
// any mutation to reflect server truth rather than patching local state.
func (s *Session) Refresh(ctx context.Context) error {
	_, err := s.Load(ctx)
	return err
}

// State returns a copy of the current query state
func (s *Session) State() QueryState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetFilters merges the patch and resets paging
func (s *Session) SetFilters(p FilterPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SetFilters(p)
}

// ReplaceFilters swaps the whole filter set and resets paging
func (s *Session) ReplaceFilters(f ApprovalFilters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ReplaceFilters(f)
}

// SetSort replaces the sort and resets paging
func (s *Session) SetSort(c SortConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SetSort(c)
}

// SetPage moves to an absolute page
func (s *Session) SetPage(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SetPage(n)
}

// SetPageSize changes the page size and resets paging
func (s *Session) SetPageSize(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SetPageSize(n)
}

// Toggle flips one item's membership in the selection
func (s *Session) Toggle(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Toggle(id, s.loader.Items())
}

// SelectAll applies select-all toggle semantics over the loaded page
func (s *Session) SelectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.SelectAll(s.loader.Items())
}

// ClearSelection empties the selection
func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Clear()
}

// SelectionSummary returns the selection aggregates over the loaded page
func (s *Session) SelectionSummary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Summarize(s.loader.Items())
}

// SelectedItems returns the selected items in page order
func (s *Session) SelectedItems() []ApprovalItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Items(s.loader.Items())
}

// SelectedIDs returns the selected quotation IDs in page order
func (s *Session) SelectedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.IDs(s.loader.Items())
}

// Snapshot returns the current loader view without issuing a load
func (s *Session) Snapshot() View {
	return s.loader.Snapshot()
}

// SessionManager hands out the per-reviewer sessions
type SessionManager struct {
	mu       sync.Mutex
	source   DataSource
	log      *zap.Logger
	sessions map[string]*Session
}

func NewSessionManager(source DataSource, log *zap.Logger) *SessionManager {
	return &SessionManager{
		source:   source,
		log:      log,
		sessions: make(map[string]*Session),
	}
}

// Session returns the reviewer's session, creating it on first use
func (m *SessionManager) Session(reviewerID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[reviewerID]
	if !ok {
		s = newSession(m.source, m.log)
		m.sessions[reviewerID] = s
	}
	return s
}
