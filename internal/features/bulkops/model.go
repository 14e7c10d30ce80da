package bulkops

import (
	"time"

	"go-approvals/internal/features/decision"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// State of the orchestrator for one reviewer's session
type State string

const (
	StateIdle       State = "IDLE"
	StateValidating State = "VALIDATING"
	StateProcessing State = "PROCESSING"
	StateCompleted  State = "COMPLETED"
	StateFailed     State = "FAILED"
)

// Request is one bulk action over the current selection
type Request struct {
	Action   decision.Action `json:"action"`
	Comments string          `json:"comments,omitempty"`
	Reason   string          `json:"reason,omitempty"`
}

// BulkOperation is the persisted audit record of one bulk run
type BulkOperation struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OperationID    string             `bson:"operation_id" json:"operation_id"`
	ReviewerID     string             `bson:"reviewer_id" json:"reviewer_id"`
	Action         decision.Action    `bson:"action" json:"action"`
	QuotationIDs   []string           `bson:"quotation_ids" json:"quotation_ids"`
	Comments       string             `bson:"comments,omitempty" json:"comments,omitempty"`
	Reason         string             `bson:"reason,omitempty" json:"reason,omitempty"`
	Status         State              `bson:"status" json:"status"`
	ProcessedCount int                `bson:"processed_count" json:"processed_count"`
	FailedCount    int                `bson:"failed_count" json:"failed_count"`
	Results        []decision.Outcome `bson:"results,omitempty" json:"results,omitempty"`
	Error          string             `bson:"error,omitempty" json:"error,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	CompletedAt    *time.Time         `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}

// Snapshot is what the orchestrator exposes to the presentation layer
type Snapshot struct {
	State    State                `json:"state"`
	Progress int                  `json:"progress"`
	Result   *decision.BulkResult `json:"result,omitempty"`
	Error    string               `json:"error,omitempty"`
	Warnings []string             `json:"warnings,omitempty"`
}
