package decision

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-approvals/internal/database"
	"go-approvals/internal/features/queue"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var (
	ErrNotFound       = errors.New("quotation not found")
	ErrNotProcessable = errors.New("quotation is not pending or under review")
	ErrInvalidAction  = errors.New("unknown decision action")
)

// Executor is the decision collaborator: it applies a single or batch
// action and reports per-item outcomes.
type Executor interface {
	ExecuteDecision(ctx context.Context, quotationID string, action Action, opts Opts) (queue.Status, error)
	ExecuteBulkDecision(ctx context.Context, quotationIDs []string, action Action, opts Opts) (*BulkResult, error)
}

// HistorySource returns the ordered audit trail for one quotation
type HistorySource interface {
	FetchHistory(ctx context.Context, quotationID string) ([]HistoryEntry, error)
}

// decisionCollection is the slice of *mongo.Collection the executor uses,
// narrow enough to fake in tests
type decisionCollection interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

type ExecutorImpl struct {
	quotations decisionCollection
	history    decisionCollection
	log        *zap.Logger
	now        func() time.Time
}

func NewExecutor(db *database.MongodbDB, log *zap.Logger) Executor {
	return &ExecutorImpl{
		quotations: db.DB.Collection("quotations"),
		history:    db.DB.Collection("approval_history"),
		log:        log,
		now:        time.Now,
	}
}

// ExecuteDecision applies one action to one quotation. Only PENDING and
// UNDER_REVIEW quotations can transition.
func (e *ExecutorImpl) ExecuteDecision(ctx context.Context, quotationID string, action Action, opts Opts) (queue.Status, error) {
	if !action.Valid() {
		return "", ErrInvalidAction
	}

	var item queue.ApprovalItem
	err := e.quotations.FindOne(ctx, bson.M{"quotation_id": quotationID}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrNotFound
		}
		return "", err
	}

	if !item.Actionable() {
		return "", fmt.Errorf("%w: %s is %s", ErrNotProcessable, quotationID, item.Status)
	}

	newStatus := StatusFor(action)
	now := e.now()

	res, err := e.quotations.UpdateOne(ctx,
		bson.M{"quotation_id": quotationID, "status": item.Status},
		bson.M{"$set": bson.M{"status": newStatus, "last_updated": now}},
	)
	if err != nil {
		return "", err
	}
	// The status guard in the filter lost a race: another reviewer moved
	// the quotation between the read and the write. No transition happened,
	// so no history is recorded.
	if res.MatchedCount == 0 {
		return "", fmt.Errorf("%w: %s was moved by a concurrent decision", ErrNotProcessable, quotationID)
	}

	entry := HistoryEntry{
		ID:          uuid.NewString(),
		QuotationID: quotationID,
		Action:      action,
		PerformedBy: opts.PerformedBy,
		OldStatus:   item.Status,
		NewStatus:   newStatus,
		Comments:    opts.Comments,
		Reason:      opts.Reason,
		Timestamp:   now,
	}
	if _, err := e.history.InsertOne(ctx, entry); err != nil {
		// The decision itself stuck; a missing trail entry is logged, not fatal
		e.log.Error("failed to record approval history",
			zap.String("quotation_id", quotationID), zap.Error(err))
	}

	e.log.Info("decision executed",
		zap.String("quotation_id", quotationID),
		zap.String("action", string(action)),
		zap.String("new_status", string(newStatus)),
		zap.String("reviewer_id", opts.PerformedBy))

	return newStatus, nil
}

// ExecuteBulkDecision applies the action to every quotation in the batch,
// collecting per-item outcomes. Item failures do not abort the batch.
func (e *ExecutorImpl) ExecuteBulkDecision(ctx context.Context, quotationIDs []string, action Action, opts Opts) (*BulkResult, error) {
	if !action.Valid() {
		return nil, ErrInvalidAction
	}

	result := &BulkResult{Results: make([]Outcome, 0, len(quotationIDs))}
	var itemErrs error

	for _, id := range quotationIDs {
		newStatus, err := e.ExecuteDecision(ctx, id, action, opts)
		if err != nil {
			result.FailedCount++
			result.Results = append(result.Results, Outcome{
				QuotationID: id,
				Success:     false,
				Error:       err.Error(),
			})
			itemErrs = multierr.Append(itemErrs, fmt.Errorf("%s: %w", id, err))
			continue
		}
		result.ProcessedCount++
		result.Results = append(result.Results, Outcome{
			QuotationID: id,
			Success:     true,
			NewStatus:   newStatus,
		})
	}

	if itemErrs != nil {
		e.log.Warn("bulk decision completed with item failures",
			zap.Int("processed", result.ProcessedCount),
			zap.Int("failed", result.FailedCount),
			zap.Error(itemErrs))
	}

	return result, nil
}
