package domain

import (
	"time"
)

// SyncRunStatus represents the lifecycle state of a synchronization run.
type SyncRunStatus string

const (
	SyncRunStatusPending   SyncRunStatus = "PENDING"
	SyncRunStatusRunning   SyncRunStatus = "RUNNING"
	SyncRunStatusCompleted SyncRunStatus = "COMPLETED"
	SyncRunStatusFailed    SyncRunStatus = "FAILED"
)

// CanTransitionTo reports whether the status machine allows moving to next.
// Transitions are monotonic: PENDING -> RUNNING -> {COMPLETED, FAILED}.
func (s SyncRunStatus) CanTransitionTo(next SyncRunStatus) bool {
	switch s {
	case SyncRunStatusPending:
		return next == SyncRunStatusRunning
	case SyncRunStatusRunning:
		return next == SyncRunStatusCompleted || next == SyncRunStatusFailed
	default:
		return false
	}
}

// SyncRun is the control record of one dealer webhook synchronization run.
// A run is addressed by its numeric id; the (ProcessType, LoadID, LoadDate)
// tuple identifies the load it synchronizes and is unique among non-terminal
// runs.
type SyncRun struct {
	ID          int64         `json:"id"`
	ProcessType string        `json:"process_type"`
	LoadID      string        `json:"load_id"`
	LoadDate    time.Time     `json:"load_date"`
	LoadEventID *int64        `json:"load_event_id,omitempty"`
	JobHandleID *string       `json:"job_handle_id,omitempty"`
	LockToken   *string       `json:"-"` // recorded for operator forensics, never exposed
	Status      SyncRunStatus `json:"status"`
	StartedAt   *time.Time    `json:"started_at,omitempty"`
	FinishedAt  *time.Time    `json:"finished_at,omitempty"`

	// Webhook group counters. Incremented only, never decremented.
	WebhooksTotal     int `json:"webhooks_total"`
	WebhooksProcessed int `json:"webhooks_processed"`
	WebhooksFailed    int `json:"webhooks_failed"`
	WebhooksSkipped   int `json:"webhooks_skipped"`

	ErrorMessage *string `json:"error_message,omitempty"`
	ErrorDetails *string `json:"error_details,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsTerminal returns true if the run is in a final state.
func (r *SyncRun) IsTerminal() bool {
	return r.Status == SyncRunStatusCompleted || r.Status == SyncRunStatusFailed
}

// RunCounts aggregates the per-group outcomes of a completed run.
type RunCounts struct {
	Total     int
	Processed int
	Failed    int
	Skipped   int
}

// Consistent reports whether the counters add up to the groups seen at start.
func (c RunCounts) Consistent() bool {
	return c.Processed+c.Failed+c.Skipped == c.Total
}
