// Package dto defines the request/response shapes of the HTTP API.
package dto

// TriggerSyncRequest is the body of POST /api/v1/sync/:processType.
// id_carga is the upstream load identifier naming the data load to fan out.
type TriggerSyncRequest struct {
	LoadID string `json:"id_carga" binding:"required"`
}

// SyncRunResponse is the API view of a sync run.
type SyncRunResponse struct {
	ID                int64   `json:"id"`
	ProcessType       string  `json:"process_type"`
	LoadID            string  `json:"load_id"`
	LoadDate          string  `json:"load_date"`
	JobHandleID       *string `json:"job_handle_id,omitempty"`
	Status            string  `json:"status"`
	StartedAt         *string `json:"started_at,omitempty"`
	FinishedAt        *string `json:"finished_at,omitempty"`
	WebhooksTotal     int     `json:"webhooks_total"`
	WebhooksProcessed int     `json:"webhooks_processed"`
	WebhooksFailed    int     `json:"webhooks_failed"`
	WebhooksSkipped   int     `json:"webhooks_skipped"`
	ErrorMessage      *string `json:"error_message,omitempty"`

	// AlreadyRunning is set on trigger responses when another run held the
	// process-type lock and this trigger was ignored.
	AlreadyRunning bool `json:"already_running,omitempty"`
}

// LockStatusResponse is the API view of a process-type lock.
type LockStatusResponse struct {
	ProcessType string `json:"process_type"`
	Active      bool   `json:"active"`
}
