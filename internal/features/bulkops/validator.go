package bulkops

import (
	"fmt"
	"strings"

	"go-approvals/internal/classify"
	"go-approvals/internal/features/decision"
	"go-approvals/internal/features/queue"

	"go.uber.org/zap"
)

// DefaultMaxSelection bounds how many quotations one bulk action may carry
const DefaultMaxSelection = 50

// Result of validating a candidate selection. Rules accumulate: the caller
// sees every violation at once, not just the first.
type Result struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings,omitempty"`
}

// ValidationError blocks a bulk action before any network call
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "bulk validation failed: " + strings.Join(e.Violations, "; ")
}

// Validator checks a candidate selection against the eligibility rules.
// It is synchronous and side-effect-free apart from the operator-awareness
// warning log.
type Validator struct {
	maxSelection int
	log          *zap.Logger
}

func NewValidator(maxSelection int, log *zap.Logger) *Validator {
	if maxSelection <= 0 {
		maxSelection = DefaultMaxSelection
	}
	return &Validator{maxSelection: maxSelection, log: log}
}

// Validate applies the rules in order, each appending to the error list.
func (v *Validator) Validate(items []queue.ApprovalItem, action decision.Action) Result {
	res := Result{Errors: []string{}}

	if len(items) == 0 {
		res.Errors = append(res.Errors, "No quotations selected")
	}

	if len(items) > v.maxSelection {
		res.Errors = append(res.Errors,
			fmt.Sprintf("Selection exceeds the maximum of %d quotations (%d selected)", v.maxSelection, len(items)))
	}

	notProcessable := 0
	overBudget := 0
	managers := make(map[string]bool)
	for i := range items {
		if !items[i].Actionable() {
			notProcessable++
		}
		if items[i].BudgetCompliance == classify.ComplianceWarning ||
			items[i].BudgetCompliance == classify.ComplianceExceeded {
			overBudget++
		}
		managers[items[i].ManagerID] = true
	}

	if notProcessable > 0 {
		res.Errors = append(res.Errors,
			fmt.Sprintf("%d quotation(s) are not processable (only PENDING and UNDER_REVIEW can be actioned)", notProcessable))
	}

	// Bulk-approving over-budget quotations is disallowed; they must go
	// through individual review. Rejections are not gated on budget.
	if action == decision.ActionApprove && overBudget > 0 {
		res.Errors = append(res.Errors,
			fmt.Sprintf("%d quotation(s) have budget warnings or exceedances and cannot be bulk approved", overBudget))
	}

	if len(managers) > 1 {
		warning := fmt.Sprintf("Selection spans %d different project managers", len(managers))
		res.Warnings = append(res.Warnings, warning)
		v.log.Warn("bulk selection spans multiple managers",
			zap.Int("managers", len(managers)),
			zap.Int("items", len(items)),
			zap.String("action", string(action)))
	}

	res.IsValid = len(res.Errors) == 0
	return res
}
