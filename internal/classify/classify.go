package classify

import "time"

// Urgency is how long a quotation has been waiting for a decision
type Urgency string

const (
	UrgencyLow      Urgency = "LOW"
	UrgencyMedium   Urgency = "MEDIUM"
	UrgencyHigh     Urgency = "HIGH"
	UrgencyCritical Urgency = "CRITICAL"
)

// Waiting-day thresholds (inclusive lower bounds)
const (
	MediumAfterDays   = 1
	HighAfterDays     = 3
	CriticalAfterDays = 7
)

// Compliance is how a quotation's amount relates to its project budget
type Compliance string

const (
	ComplianceCompliant Compliance = "COMPLIANT"
	ComplianceWarning   Compliance = "WARNING"
	ComplianceExceeded  Compliance = "EXCEEDED"
)

// Utilization thresholds (exclusive lower bounds)
const (
	WarningUtilization  = 0.9
	ExceededUtilization = 1.0
)

// DaysWaiting returns whole days elapsed between submission and now.
// Negative spans (submission in the future) floor to zero.
func DaysWaiting(submissionDate, now time.Time) int {
	d := now.Sub(submissionDate)
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}

// UrgencyOf classifies a quotation by how many whole days it has waited.
func UrgencyOf(submissionDate, now time.Time) Urgency {
	days := DaysWaiting(submissionDate, now)
	switch {
	case days >= CriticalAfterDays:
		return UrgencyCritical
	case days >= HighAfterDays:
		return UrgencyHigh
	case days >= MediumAfterDays:
		return UrgencyMedium
	default:
		return UrgencyLow
	}
}

// BudgetComplianceOf classifies a candidate amount against the project's
// gross budget. A project with no allocated budget cannot absorb spend, so
// any positive candidate amount against a zero budget is EXCEEDED.
func BudgetComplianceOf(projectBudget, spentAmount, candidateAmount float64) Compliance {
	if projectBudget <= 0 {
		if candidateAmount == 0 {
			return ComplianceCompliant
		}
		return ComplianceExceeded
	}

	utilization := (spentAmount + candidateAmount) / projectBudget
	switch {
	case utilization > ExceededUtilization:
		return ComplianceExceeded
	case utilization > WarningUtilization:
		return ComplianceWarning
	default:
		return ComplianceCompliant
	}
}

// IsUrgent reports whether an urgency level counts toward the queue-health
// urgent indicator.
func IsUrgent(u Urgency) bool {
	return u == UrgencyHigh || u == UrgencyCritical
}
