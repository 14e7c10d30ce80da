package decision

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-approvals/internal/features/queue"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// fakeCollection stands in for a mongo collection. FindOne replays a canned
// document; UpdateOne reports a configurable match count.
type fakeCollection struct {
	findDoc interface{}
	findErr error

	matched     int64
	updateErr   error
	updateCalls int

	inserted  []interface{}
	insertErr error
}

func (c *fakeCollection) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult {
	return mongo.NewSingleResultFromDocument(c.findDoc, c.findErr, nil)
}

func (c *fakeCollection) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	c.updateCalls++
	if c.updateErr != nil {
		return nil, c.updateErr
	}
	return &mongo.UpdateResult{MatchedCount: c.matched, ModifiedCount: c.matched}, nil
}

func (c *fakeCollection) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	if c.insertErr != nil {
		return nil, c.insertErr
	}
	c.inserted = append(c.inserted, document)
	return &mongo.InsertOneResult{}, nil
}

func testExecutor(quotations, history *fakeCollection) *ExecutorImpl {
	return &ExecutorImpl{
		quotations: quotations,
		history:    history,
		log:        zap.NewNop(),
		now:        func() time.Time { return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC) },
	}
}

func pendingDoc(id string) queue.ApprovalItem {
	return queue.ApprovalItem{QuotationID: id, Status: queue.StatusPending}
}

func TestExecuteDecisionSuccess(t *testing.T) {
	quotations := &fakeCollection{findDoc: pendingDoc("q-1"), matched: 1}
	history := &fakeCollection{}
	e := testExecutor(quotations, history)

	newStatus, err := e.ExecuteDecision(context.Background(), "q-1", ActionApprove, Opts{PerformedBy: "rev-1"})
	if err != nil {
		t.Fatalf("ExecuteDecision: %v", err)
	}
	if newStatus != queue.StatusApproved {
		t.Errorf("new status = %s, want APPROVED", newStatus)
	}
	if len(history.inserted) != 1 {
		t.Fatalf("history records = %d, want 1", len(history.inserted))
	}
	entry, ok := history.inserted[0].(HistoryEntry)
	if !ok {
		t.Fatalf("history record is %T", history.inserted[0])
	}
	if entry.OldStatus != queue.StatusPending || entry.NewStatus != queue.StatusApproved {
		t.Errorf("history transition %s -> %s", entry.OldStatus, entry.NewStatus)
	}
}

func TestExecuteDecisionRaceLostWritesNoHistory(t *testing.T) {
	// Status guard matches nothing: the quotation was moved between the
	// read and the write
	quotations := &fakeCollection{findDoc: pendingDoc("q-1"), matched: 0}
	history := &fakeCollection{}
	e := testExecutor(quotations, history)

	_, err := e.ExecuteDecision(context.Background(), "q-1", ActionReject, Opts{Reason: "over budget"})
	if !errors.Is(err, ErrNotProcessable) {
		t.Fatalf("err = %v, want ErrNotProcessable", err)
	}
	if quotations.updateCalls != 1 {
		t.Errorf("update calls = %d, want 1", quotations.updateCalls)
	}
	if len(history.inserted) != 0 {
		t.Errorf("history written for a transition that never happened: %+v", history.inserted)
	}
}

func TestExecuteDecisionNotFound(t *testing.T) {
	quotations := &fakeCollection{findDoc: pendingDoc("q-1"), findErr: mongo.ErrNoDocuments}
	e := testExecutor(quotations, &fakeCollection{})

	if _, err := e.ExecuteDecision(context.Background(), "q-404", ActionApprove, Opts{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestExecuteDecisionNotActionable(t *testing.T) {
	quotations := &fakeCollection{
		findDoc: queue.ApprovalItem{QuotationID: "q-1", Status: queue.StatusApproved},
	}
	e := testExecutor(quotations, &fakeCollection{})

	if _, err := e.ExecuteDecision(context.Background(), "q-1", ActionApprove, Opts{}); !errors.Is(err, ErrNotProcessable) {
		t.Errorf("err = %v, want ErrNotProcessable", err)
	}
	if quotations.updateCalls != 0 {
		t.Errorf("update issued for a non-actionable quotation")
	}
}

func TestExecuteBulkDecisionCountsRaceLossAsFailed(t *testing.T) {
	quotations := &fakeCollection{findDoc: pendingDoc("q-1"), matched: 0}
	e := testExecutor(quotations, &fakeCollection{})

	result, err := e.ExecuteBulkDecision(context.Background(), []string{"q-1", "q-2"}, ActionApprove, Opts{})
	if err != nil {
		t.Fatalf("ExecuteBulkDecision: %v", err)
	}
	if result.ProcessedCount != 0 || result.FailedCount != 2 {
		t.Errorf("result = %d processed / %d failed, want 0/2", result.ProcessedCount, result.FailedCount)
	}
}
