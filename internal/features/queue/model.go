package queue

import (
	"time"

	"go-approvals/internal/classify"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status is the workflow state of a quotation
type Status string

const (
	StatusPending     Status = "PENDING"
	StatusUnderReview Status = "UNDER_REVIEW"
	StatusApproved    Status = "APPROVED"
	StatusRejected    Status = "REJECTED"
	StatusReturned    Status = "RETURNED"
)

// ApprovalItem is one quotation pending a decision.
// Urgency, budget compliance and days waiting are derived from the stored
// inputs at read time and never persisted.
type ApprovalItem struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	QuotationID     string             `bson:"quotation_id" json:"quotation_id"`
	QuotationNumber string             `bson:"quotation_number" json:"quotation_number"`
	ProjectID       string             `bson:"project_id" json:"project_id"`
	ProjectName     string             `bson:"project_name" json:"project_name"`
	ManagerID       string             `bson:"manager_id" json:"manager_id"`
	ManagerName     string             `bson:"manager_name" json:"manager_name"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	LineItemCount   int                `bson:"line_item_count" json:"line_item_count"`
	HasDocuments    bool               `bson:"has_documents" json:"has_documents"`
	TotalAmount     float64            `bson:"total_amount" json:"total_amount"`
	Currency        string             `bson:"currency" json:"currency"`
	SubmissionDate  time.Time          `bson:"submission_date" json:"submission_date"`
	LastUpdated     time.Time          `bson:"last_updated" json:"last_updated"`
	Status          Status             `bson:"status" json:"status"`

	// Budget inputs, denormalized from the project at write time
	ProjectBudget float64 `bson:"project_budget" json:"project_budget"`
	SpentAmount   float64 `bson:"spent_amount" json:"spent_amount"`

	// Derived on read
	DaysWaiting      int                 `bson:"-" json:"days_waiting"`
	UrgencyLevel     classify.Urgency    `bson:"-" json:"urgency_level"`
	BudgetCompliance classify.Compliance `bson:"-" json:"budget_compliance"`
}

// Derive fills the computed fields from the stored inputs
func (i *ApprovalItem) Derive(now time.Time) {
	i.DaysWaiting = classify.DaysWaiting(i.SubmissionDate, now)
	i.UrgencyLevel = classify.UrgencyOf(i.SubmissionDate, now)
	i.BudgetCompliance = classify.BudgetComplianceOf(i.ProjectBudget, i.SpentAmount, i.TotalAmount)
}

// Actionable reports whether the item is eligible for approve/reject/bulk actions
func (i *ApprovalItem) Actionable() bool {
	return i.Status == StatusPending || i.Status == StatusUnderReview
}

// ApprovalFilters is an optional predicate set. An absent/empty field means
// "no constraint", never "match nothing".
type ApprovalFilters struct {
	Statuses     []Status              `json:"statuses,omitempty"`
	Urgencies    []classify.Urgency    `json:"urgencies,omitempty"`
	Compliance   []classify.Compliance `json:"compliance,omitempty"`
	Search       string                `json:"search,omitempty"`
	MinAmount    *float64              `json:"min_amount,omitempty"`
	MaxAmount    *float64              `json:"max_amount,omitempty"`
	StartDate    *time.Time            `json:"start_date,omitempty"`
	EndDate      *time.Time            `json:"end_date,omitempty"`
	HasDocuments *bool                 `json:"has_documents,omitempty"`
	ProjectID    string                `json:"project_id,omitempty"`
	ManagerID    string                `json:"manager_id,omitempty"`
}

// FilterPatch is a partial update to ApprovalFilters. Nil fields leave the
// current value untouched; a non-nil empty slice or string clears that
// constraint back to "no constraint".
type FilterPatch struct {
	Statuses     *[]Status              `json:"statuses,omitempty"`
	Urgencies    *[]classify.Urgency    `json:"urgencies,omitempty"`
	Compliance   *[]classify.Compliance `json:"compliance,omitempty"`
	Search       *string                `json:"search,omitempty"`
	MinAmount    *float64               `json:"min_amount,omitempty"`
	MaxAmount    *float64               `json:"max_amount,omitempty"`
	StartDate    *time.Time             `json:"start_date,omitempty"`
	EndDate      *time.Time             `json:"end_date,omitempty"`
	HasDocuments *bool                  `json:"has_documents,omitempty"`
	ProjectID    *string                `json:"project_id,omitempty"`
	ManagerID    *string                `json:"manager_id,omitempty"`
}

// Apply merges the patch into the filters
func (f *ApprovalFilters) Apply(p FilterPatch) {
	if p.Statuses != nil {
		f.Statuses = *p.Statuses
	}
	if p.Urgencies != nil {
		f.Urgencies = *p.Urgencies
	}
	if p.Compliance != nil {
		f.Compliance = *p.Compliance
	}
	if p.Search != nil {
		f.Search = *p.Search
	}
	if p.MinAmount != nil {
		f.MinAmount = p.MinAmount
	}
	if p.MaxAmount != nil {
		f.MaxAmount = p.MaxAmount
	}
	if p.StartDate != nil {
		f.StartDate = p.StartDate
	}
	if p.EndDate != nil {
		f.EndDate = p.EndDate
	}
	if p.HasDocuments != nil {
		f.HasDocuments = p.HasDocuments
	}
	if p.ProjectID != nil {
		f.ProjectID = *p.ProjectID
	}
	if p.ManagerID != nil {
		f.ManagerID = *p.ManagerID
	}
}

// SortDirection is asc or desc
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortConfig describes the queue ordering
type SortConfig struct {
	Field     string        `json:"field"`
	Direction SortDirection `json:"direction"`
}

// Pagination carries the derived paging facts for one loaded page.
// TotalPages, HasNext and HasPrevious are always computed from page, size
// and total, never set independently.
type Pagination struct {
	Page        int   `json:"page"`
	Size        int   `json:"size"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// NewPagination derives the full pagination block
func NewPagination(page, size int, total int64) Pagination {
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return Pagination{
		Page:        page,
		Size:        size,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages-1,
		HasPrevious: page > 0,
	}
}

// Page is one loaded page of the approval queue
type Page struct {
	Items      []ApprovalItem `json:"items"`
	Pagination Pagination     `json:"pagination"`
}
