package stats

import "time"

// Snapshot is one point-in-time summary of the approval queue, broadcast to
// connected dashboards on every poll.
type Snapshot struct {
	PendingCount       int64     `json:"pending_count"`
	UrgentCount        int64     `json:"urgent_count"`
	CriticalCount      int64     `json:"critical_count"`
	TotalPendingAmount float64   `json:"total_pending_amount"`
	OldestWaitingDays  int       `json:"oldest_waiting_days"`
	GeneratedAt        time.Time `json:"generated_at"`
}
