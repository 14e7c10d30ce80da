package decision

import (
	"time"

	"go-approvals/internal/features/queue"
)

// Action is a reviewer decision applied to one or more quotations
type Action string

const (
	ActionApprove        Action = "APPROVE"
	ActionReject         Action = "REJECT"
	ActionRequestChanges Action = "REQUEST_CHANGES"
)

// Valid reports whether the action is one of the known decisions
func (a Action) Valid() bool {
	switch a {
	case ActionApprove, ActionReject, ActionRequestChanges:
		return true
	}
	return false
}

// StatusFor maps an action to the workflow status it produces
func StatusFor(a Action) queue.Status {
	switch a {
	case ActionApprove:
		return queue.StatusApproved
	case ActionReject:
		return queue.StatusRejected
	default:
		return queue.StatusReturned
	}
}

// Opts carries the optional decision context
type Opts struct {
	Comments    string `json:"comments,omitempty"`
	Reason      string `json:"reason,omitempty"`
	PerformedBy string `json:"-"`
}

// Outcome is the per-item result of a decision
type Outcome struct {
	QuotationID string       `bson:"quotation_id" json:"quotation_id"`
	Success     bool         `bson:"success" json:"success"`
	NewStatus   queue.Status `bson:"new_status,omitempty" json:"new_status,omitempty"`
	Error       string       `bson:"error,omitempty" json:"error,omitempty"`
}

// BulkResult accounts for a whole batch. A non-zero FailedCount is partial
// success, not failure: the batch ran.
type BulkResult struct {
	ProcessedCount int       `bson:"processed_count" json:"processed_count"`
	FailedCount    int       `bson:"failed_count" json:"failed_count"`
	Results        []Outcome `bson:"results" json:"results"`
}

// HistoryEntry is one immutable audit record for a quotation
type HistoryEntry struct {
	ID          string       `bson:"_id" json:"id"`
	QuotationID string       `bson:"quotation_id" json:"quotation_id"`
	Action      Action       `bson:"action" json:"action"`
	PerformedBy string       `bson:"performed_by" json:"performed_by"`
	OldStatus   queue.Status `bson:"old_status" json:"old_status"`
	NewStatus   queue.Status `bson:"new_status" json:"new_status"`
	Comments    string       `bson:"comments,omitempty" json:"comments,omitempty"`
	Reason      string       `bson:"reason,omitempty" json:"reason,omitempty"`
	Timestamp   time.Time    `bson:"timestamp" json:"timestamp"`
}
