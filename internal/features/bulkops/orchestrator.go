package bulkops

import (
	"context"
	"errors"
	"sync"
	"time"

	"go-approvals/internal/features/decision"
	"go-approvals/internal/features/queue"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrOperationInFlight = errors.New("a bulk operation is already processing")
	ErrNotResettable     = errors.New("orchestrator can only be reset from a terminal state")
)

// Progress estimation while the batch request is outstanding. Latency is
// unknown, so the indicator advances in fixed increments up to a ceiling
// and only reaches 100 once the response is in.
const (
	ProgressStep     = 15
	ProgressCeiling  = 90
	progressInterval = 250 * time.Millisecond
)

// QueueSession is the slice of a reviewer's queue session the orchestrator
// needs: the selected working set and the post-run refresh/clear hooks.
type QueueSession interface {
	SelectedItems() []queue.ApprovalItem
	SelectedIDs() []string
	ClearSelection()
	Refresh(ctx context.Context) error
}

// Orchestrator runs one reviewer's bulk actions through the state machine
// Idle -> Validating -> Processing -> {Completed | Failed}, with Idle
// reachable again from either terminal state via Reset. Only one run may
// be Processing at a time.
type Orchestrator struct {
	validator *Validator
	executor  decision.Executor
	repo      OperationRepository
	log       *zap.Logger

	reviewerID string

	mu       sync.Mutex
	state    State
	progress int
	result   *decision.BulkResult
	errMsg   string
	warnings []string
	stopTick chan struct{}
}

func NewOrchestrator(reviewerID string, validator *Validator, executor decision.Executor, repo OperationRepository, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		validator:  validator,
		executor:   executor,
		repo:       repo,
		log:        log,
		reviewerID: reviewerID,
		state:      StateIdle,
	}
}

// Validate dry-runs the rules against the current selection
func (o *Orchestrator) Validate(session QueueSession, req Request) Result {
	return o.validator.Validate(session.SelectedItems(), req.Action)
}

// Execute validates the selection and, if it passes, issues one batch
// request carrying every selected ID. Validation failures never reach the
// network and leave the orchestrator back in Idle.
func (o *Orchestrator) Execute(ctx context.Context, session QueueSession, req Request) error {
	o.mu.Lock()
	// The whole Validating -> Processing span counts as in flight: a second
	// call arriving during validation must not slip past the guard.
	if o.state == StateValidating || o.state == StateProcessing {
		o.mu.Unlock()
		return ErrOperationInFlight
	}
	o.state = StateValidating
	o.result = nil
	o.errMsg = ""
	o.mu.Unlock()

	items := session.SelectedItems()
	validation := o.validator.Validate(items, req.Action)

	o.mu.Lock()
	o.warnings = validation.Warnings
	if !validation.IsValid {
		o.state = StateIdle
		o.mu.Unlock()
		return &ValidationError{Violations: validation.Errors}
	}

	ids := session.SelectedIDs()
	o.state = StateProcessing
	o.progress = 0
	stop := make(chan struct{})
	o.stopTick = stop
	o.mu.Unlock()

	go o.animateProgress(stop)

	opID := uuid.NewString()
	started := time.Now()
	opts := decision.Opts{Comments: req.Comments, Reason: req.Reason, PerformedBy: o.reviewerID}
	result, err := o.executor.ExecuteBulkDecision(ctx, ids, req.Action, opts)

	o.mu.Lock()
	close(stop)
	o.stopTick = nil

	record := &BulkOperation{
		OperationID:  opID,
		ReviewerID:   o.reviewerID,
		Action:       req.Action,
		QuotationIDs: ids,
		Comments:     req.Comments,
		Reason:       req.Reason,
		CreatedAt:    started,
	}

	if err != nil {
		// Transport or server failure before any per-item result is known
		o.state = StateFailed
		o.errMsg = err.Error()
		o.progress = 0
		record.Status = StateFailed
		record.Error = err.Error()
		o.mu.Unlock()

		o.log.Error("bulk operation failed",
			zap.String("operation_id", opID),
			zap.String("reviewer_id", o.reviewerID),
			zap.Error(err))
		o.persist(ctx, record)
		return err
	}

	// Partial success is still Completed: the batch ran
	o.state = StateCompleted
	o.progress = 100
	o.result = result
	record.Status = StateCompleted
	record.ProcessedCount = result.ProcessedCount
	record.FailedCount = result.FailedCount
	record.Results = result.Results
	o.mu.Unlock()

	o.log.Info("bulk operation completed",
		zap.String("operation_id", opID),
		zap.String("reviewer_id", o.reviewerID),
		zap.Int("processed", result.ProcessedCount),
		zap.Int("failed", result.FailedCount))
	o.persist(ctx, record)
	return nil
}

func (o *Orchestrator) persist(ctx context.Context, record *BulkOperation) {
	if err := o.repo.Save(ctx, record); err != nil {
		o.log.Error("failed to persist bulk operation record",
			zap.String("operation_id", record.OperationID), zap.Error(err))
	}
}

// Reset returns the orchestrator to Idle from a terminal state, clears the
// selection, and refreshes the queue so the view reflects server truth.
func (o *Orchestrator) Reset(ctx context.Context, session QueueSession) error {
	o.mu.Lock()
	if o.state == StateProcessing || o.state == StateValidating {
		o.mu.Unlock()
		return ErrNotResettable
	}
	o.state = StateIdle
	o.progress = 0
	o.result = nil
	o.errMsg = ""
	o.warnings = nil
	o.mu.Unlock()

	session.ClearSelection()
	return session.Refresh(ctx)
}

// Status returns the current snapshot
func (o *Orchestrator) Status() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return Snapshot{
		State:    o.state,
		Progress: o.progress,
		Result:   o.result,
		Error:    o.errMsg,
		Warnings: o.warnings,
	}
}

// animateProgress advances the estimate while the batch is outstanding
func (o *Orchestrator) animateProgress(stop chan struct{}) {
	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			o.bumpProgress()
		}
	}
}

// bumpProgress advances one fixed increment, never past the ceiling
func (o *Orchestrator) bumpProgress() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != StateProcessing {
		return
	}
	o.progress += ProgressStep
	if o.progress > ProgressCeiling {
		o.progress = ProgressCeiling
	}
}

// Manager hands out one orchestrator per reviewer
type Manager struct {
	validator *Validator
	executor  decision.Executor
	repo      OperationRepository
	log       *zap.Logger

	mu         sync.Mutex
	byReviewer map[string]*Orchestrator
}

func NewManager(validator *Validator, executor decision.Executor, repo OperationRepository, log *zap.Logger) *Manager {
	return &Manager{
		validator:  validator,
		executor:   executor,
		repo:       repo,
		log:        log,
		byReviewer: make(map[string]*Orchestrator),
	}
}

// Orchestrator returns the reviewer's orchestrator, creating it on first use
func (m *Manager) Orchestrator(reviewerID string) *Orchestrator {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.byReviewer[reviewerID]
	if !ok {
		o = NewOrchestrator(reviewerID, m.validator, m.executor, m.repo, m.log)
		m.byReviewer[reviewerID] = o
	}
	return o
}
