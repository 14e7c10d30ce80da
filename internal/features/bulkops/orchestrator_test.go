package bulkops

import (
	"context"
	"errors"
	"testing"

	"go-approvals/internal/features/decision"
	"go-approvals/internal/features/queue"

	"go.uber.org/zap"
)

type fakeSession struct {
	items        []queue.ApprovalItem
	cleared      int
	refreshCount int
	refreshErr   error
}

func (s *fakeSession) SelectedItems() []queue.ApprovalItem { return s.items }

func (s *fakeSession) SelectedIDs() []string {
	ids := make([]string, len(s.items))
	for i := range s.items {
		ids[i] = s.items[i].QuotationID
	}
	return ids
}

func (s *fakeSession) ClearSelection() {
	s.cleared++
	s.items = nil
}

func (s *fakeSession) Refresh(ctx context.Context) error {
	s.refreshCount++
	return s.refreshErr
}

type fakeExecutor struct {
	calls  int
	result *decision.BulkResult
	err    error

	// observed state mid-flight, captured while the batch is outstanding
	observe func()
}

func (e *fakeExecutor) ExecuteDecision(ctx context.Context, quotationID string, action decision.Action, opts decision.Opts) (queue.Status, error) {
	return "", errors.New("not used")
}

func (e *fakeExecutor) ExecuteBulkDecision(ctx context.Context, ids []string, action decision.Action, opts decision.Opts) (*decision.BulkResult, error) {
	e.calls++
	if e.observe != nil {
		e.observe()
	}
	if e.err != nil {
		return nil, e.err
	}
	if e.result != nil {
		return e.result, nil
	}
	result := &decision.BulkResult{}
	for _, id := range ids {
		result.ProcessedCount++
		result.Results = append(result.Results, decision.Outcome{
			QuotationID: id, Success: true, NewStatus: queue.StatusApproved,
		})
	}
	return result, nil
}

type fakeOpRepo struct {
	saved []BulkOperation
}

func (r *fakeOpRepo) Save(ctx context.Context, op *BulkOperation) error {
	r.saved = append(r.saved, *op)
	return nil
}

func (r *fakeOpRepo) FindByReviewer(ctx context.Context, reviewerID string, limit int) ([]BulkOperation, error) {
	return r.saved, nil
}

func testOrchestrator(exec decision.Executor, repo OperationRepository) *Orchestrator {
	v := NewValidator(DefaultMaxSelection, zap.NewNop())
	return NewOrchestrator("rev-1", v, exec, repo, zap.NewNop())
}

func TestExecuteHappyPath(t *testing.T) {
	session := &fakeSession{items: pendingItems(3)}
	exec := &fakeExecutor{}
	repo := &fakeOpRepo{}
	o := testOrchestrator(exec, repo)

	var midState State
	exec.observe = func() { midState = o.Status().State }

	if err := o.Execute(context.Background(), session, Request{Action: decision.ActionApprove}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if midState != StateProcessing {
		t.Errorf("state during batch = %s, want PROCESSING", midState)
	}

	snap := o.Status()
	if snap.State != StateCompleted {
		t.Errorf("state = %s, want COMPLETED", snap.State)
	}
	if snap.Progress != 100 {
		t.Errorf("progress = %d, want 100", snap.Progress)
	}
	if snap.Result == nil || snap.Result.ProcessedCount != 3 || snap.Result.FailedCount != 0 {
		t.Errorf("result = %+v, want 3 processed / 0 failed", snap.Result)
	}
	if exec.calls != 1 {
		t.Errorf("executor called %d times, want 1", exec.calls)
	}
	if len(repo.saved) != 1 || repo.saved[0].Status != StateCompleted {
		t.Errorf("persisted records = %+v", repo.saved)
	}
}

func TestExecutePartialFailureIsCompleted(t *testing.T) {
	session := &fakeSession{items: pendingItems(5)}
	exec := &fakeExecutor{result: &decision.BulkResult{ProcessedCount: 3, FailedCount: 2}}
	o := testOrchestrator(exec, &fakeOpRepo{})

	if err := o.Execute(context.Background(), session, Request{Action: decision.ActionReject}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	snap := o.Status()
	if snap.State != StateCompleted {
		t.Errorf("state = %s, want COMPLETED despite per-item failures", snap.State)
	}
	if snap.Result.ProcessedCount != 3 || snap.Result.FailedCount != 2 {
		t.Errorf("result = %+v", snap.Result)
	}
}

func TestExecuteValidationFailureStaysIdle(t *testing.T) {
	session := &fakeSession{items: pendingItems(51)}
	exec := &fakeExecutor{}
	repo := &fakeOpRepo{}
	o := testOrchestrator(exec, repo)

	err := o.Execute(context.Background(), session, Request{Action: decision.ActionApprove})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if exec.calls != 0 {
		t.Errorf("executor reached despite invalid selection")
	}
	if got := o.Status().State; got != StateIdle {
		t.Errorf("state = %s, want IDLE after validation failure", got)
	}
	if len(repo.saved) != 0 {
		t.Errorf("validation failure was persisted: %+v", repo.saved)
	}
}

func TestExecuteTransportFailure(t *testing.T) {
	session := &fakeSession{items: pendingItems(2)}
	exec := &fakeExecutor{err: errors.New("gateway timeout")}
	repo := &fakeOpRepo{}
	o := testOrchestrator(exec, repo)

	if err := o.Execute(context.Background(), session, Request{Action: decision.ActionApprove}); err == nil {
		t.Fatal("Execute returned nil for a failed batch")
	}

	snap := o.Status()
	if snap.State != StateFailed {
		t.Errorf("state = %s, want FAILED", snap.State)
	}
	if snap.Progress != 0 {
		t.Errorf("progress = %d, want 0 after failure", snap.Progress)
	}
	if snap.Error == "" {
		t.Error("error message not retained")
	}
	if len(repo.saved) != 1 || repo.saved[0].Status != StateFailed {
		t.Errorf("persisted records = %+v", repo.saved)
	}
}

func TestExecuteRejectsConcurrentRun(t *testing.T) {
	session := &fakeSession{items: pendingItems(2)}
	exec := &fakeExecutor{}
	o := testOrchestrator(exec, &fakeOpRepo{})

	var concurrentErr error
	exec.observe = func() {
		concurrentErr = o.Execute(context.Background(), session, Request{Action: decision.ActionApprove})
	}

	if err := o.Execute(context.Background(), session, Request{Action: decision.ActionApprove}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !errors.Is(concurrentErr, ErrOperationInFlight) {
		t.Errorf("concurrent Execute err = %v, want ErrOperationInFlight", concurrentErr)
	}
	if exec.calls != 1 {
		t.Errorf("executor called %d times, want 1", exec.calls)
	}
}

func TestResetClearsSelectionAndRefreshesOnce(t *testing.T) {
	session := &fakeSession{items: pendingItems(3)}
	o := testOrchestrator(&fakeExecutor{}, &fakeOpRepo{})

	if err := o.Execute(context.Background(), session, Request{Action: decision.ActionApprove}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if err := o.Reset(context.Background(), session); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	if session.cleared != 1 {
		t.Errorf("ClearSelection called %d times, want 1", session.cleared)
	}
	if session.refreshCount != 1 {
		t.Errorf("Refresh called %d times, want 1", session.refreshCount)
	}
	if len(session.SelectedItems()) != 0 {
		t.Error("selection not empty after reset")
	}
	snap := o.Status()
	if snap.State != StateIdle || snap.Progress != 0 || snap.Result != nil {
		t.Errorf("snapshot after reset = %+v", snap)
	}
}

func TestResetRefusedWhileProcessing(t *testing.T) {
	session := &fakeSession{items: pendingItems(1)}
	exec := &fakeExecutor{}
	o := testOrchestrator(exec, &fakeOpRepo{})

	var resetErr error
	exec.observe = func() {
		resetErr = o.Reset(context.Background(), session)
	}

	if err := o.Execute(context.Background(), session, Request{Action: decision.ActionApprove}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !errors.Is(resetErr, ErrNotResettable) {
		t.Errorf("Reset while processing = %v, want ErrNotResettable", resetErr)
	}
	if session.cleared != 0 {
		t.Errorf("selection cleared during an in-flight run")
	}
}

func TestBumpProgressCeiling(t *testing.T) {
	o := testOrchestrator(&fakeExecutor{}, &fakeOpRepo{})
	o.state = StateProcessing

	for i := 0; i < 20; i++ {
		o.bumpProgress()
	}
	if o.Status().Progress != ProgressCeiling {
		t.Errorf("progress = %d, want capped at %d", o.Status().Progress, ProgressCeiling)
	}

	o.mu.Lock()
	o.state = StateIdle
	o.progress = 0
	o.mu.Unlock()
	o.bumpProgress()
	if o.Status().Progress != 0 {
		t.Error("progress advanced outside PROCESSING")
	}
}

func TestManagerReturnsSameOrchestratorPerReviewer(t *testing.T) {
	m := NewManager(NewValidator(DefaultMaxSelection, zap.NewNop()), &fakeExecutor{}, &fakeOpRepo{}, zap.NewNop())

	a := m.Orchestrator("rev-1")
	b := m.Orchestrator("rev-1")
	c := m.Orchestrator("rev-2")
	if a != b {
		t.Error("same reviewer got different orchestrators")
	}
	if a == c {
		t.Error("different reviewers share an orchestrator")
	}
}

// gatedSession parks the caller inside the validating phase until released,
// so an overlapping Execute can be issued at exactly that point.
type gatedSession struct {
	fakeSession
	entered chan struct{}
	release chan struct{}
}

func (s *gatedSession) SelectedItems() []queue.ApprovalItem {
	s.entered <- struct{}{}
	<-s.release
	return s.fakeSession.SelectedItems()
}

func TestExecuteRejectsOverlapDuringValidation(t *testing.T) {
	session := &gatedSession{
		fakeSession: fakeSession{items: pendingItems(2)},
		entered:     make(chan struct{}),
		release:     make(chan struct{}),
	}
	exec := &fakeExecutor{}
	o := testOrchestrator(exec, &fakeOpRepo{})

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- o.Execute(context.Background(), session, Request{Action: decision.ActionApprove})
	}()

	// The first call is now inside validation, before Processing
	<-session.entered
	secondErr := o.Execute(context.Background(), &fakeSession{items: pendingItems(2)}, Request{Action: decision.ActionApprove})
	close(session.release)

	if err := <-firstDone; err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if !errors.Is(secondErr, ErrOperationInFlight) {
		t.Errorf("overlapping Execute err = %v, want ErrOperationInFlight", secondErr)
	}
	if exec.calls != 1 {
		t.Errorf("executor called %d times, want 1", exec.calls)
	}
}
