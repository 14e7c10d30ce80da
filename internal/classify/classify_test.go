package classify

import (
	"testing"
	"time"
)

func TestUrgencyOf(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		waitedHours float64
		want        Urgency
	}{
		{"Just submitted", 0, UrgencyLow},
		{"Under one day", 0.9 * 24, UrgencyLow},
		{"Exactly one day", 1 * 24, UrgencyMedium},
		{"Under three days", 2.9 * 24, UrgencyMedium},
		{"Exactly three days", 3 * 24, UrgencyHigh},
		{"Under seven days", 6.9 * 24, UrgencyHigh},
		{"Exactly seven days", 7 * 24, UrgencyCritical},
		{"Hundred days", 100 * 24, UrgencyCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			submitted := now.Add(-time.Duration(tt.waitedHours * float64(time.Hour)))
			if got := UrgencyOf(submitted, now); got != tt.want {
				t.Errorf("UrgencyOf(%v hours waited) = %v, want %v", tt.waitedHours, got, tt.want)
			}
		})
	}
}

func TestUrgencyOfFutureSubmission(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	if got := UrgencyOf(now.Add(time.Hour), now); got != UrgencyLow {
		t.Errorf("future submission = %v, want LOW", got)
	}
}

func TestBudgetComplianceOf(t *testing.T) {
	tests := []struct {
		name      string
		budget    float64
		spent     float64
		candidate float64
		want      Compliance
	}{
		{"Well under budget", 100000, 50000, 10000, ComplianceCompliant},
		{"Warning at 95 percent", 100000, 85000, 10000, ComplianceWarning},
		{"Exceeded at 105 percent", 100000, 95000, 10000, ComplianceExceeded},
		{"Exactly 90 percent stays compliant", 100000, 80000, 10000, ComplianceCompliant},
		{"Exactly 100 percent stays warning", 100000, 90000, 10000, ComplianceWarning},
		{"Zero budget with spend", 0, 0, 500, ComplianceExceeded},
		{"Zero budget no spend", 0, 0, 0, ComplianceCompliant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BudgetComplianceOf(tt.budget, tt.spent, tt.candidate); got != tt.want {
				t.Errorf("BudgetComplianceOf(%v, %v, %v) = %v, want %v",
					tt.budget, tt.spent, tt.candidate, got, tt.want)
			}
		})
	}
}

func TestDaysWaiting(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	if got := DaysWaiting(now.Add(-36*time.Hour), now); got != 1 {
		t.Errorf("DaysWaiting(36h) = %d, want 1", got)
	}
	if got := DaysWaiting(now, now); got != 0 {
		t.Errorf("DaysWaiting(0) = %d, want 0", got)
	}
}
