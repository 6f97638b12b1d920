package ports

import (
	"context"
	"time"

	"dealer-catalog-sync/internal/core/domain"
)

// SyncRunRegistry persists sync run lifecycle state. Creation is idempotent
// per (processType, loadID, loadDate): while a run for the tuple is not
// terminal, GetOrCreate returns the existing row instead of a new one.
// Status transitions are guarded in SQL (UPDATE ... WHERE status = ...), so
// only the single lock holder ever advances a run.
type SyncRunRegistry interface {
	GetOrCreate(ctx context.Context, processType, loadID string, loadDate time.Time) (*domain.SyncRun, error)
	GetByID(ctx context.Context, id int64) (*domain.SyncRun, error)
	SetRunning(ctx context.Context, id int64, jobHandleID, lockToken, actor string) error

	// SetTotal records the group count seen at fan-out start; counter
	// increments during the run keep the live counts visible to pollers.
	// Both are single atomic statements guarded on status = RUNNING.
	SetTotal(ctx context.Context, id int64, total int, actor string) error
	IncrementCounters(ctx context.Context, id int64, processed, failed, skipped int, actor string) error

	SetCompleted(ctx context.Context, id int64, counts domain.RunCounts, actor string) error
	SetFailed(ctx context.Context, id int64, errMsg, errDetails, actor string) error
}

// DealerGroupStore is the boundary to the dealer webhook snapshot. Rows are
// created by the upstream load process; this subsystem only reads them
// grouped by webhook URL and updates per-URL delivery state. GetActiveGroups
// excludes groups already delivered (EXITOSO), which is what makes a resumed
// run not double-count prior successes.
type DealerGroupStore interface {
	GetActiveGroups(ctx context.Context, loadEventID int64) ([]domain.DealerWebhookGroup, error)

	// CountGroups counts every webhook URL group of the load event,
	// delivered or not. Payload metadata reports this stable total rather
	// than the shrinking still-pending count.
	CountGroups(ctx context.Context, loadEventID int64) (int, error)
	MarkDelivered(ctx context.Context, webhookURL string, loadEventID int64, ackToken, actor string) error
	MarkFailed(ctx context.Context, webhookURL string, loadEventID int64, errMsg, actor string) error
}

// CatalogRepository provides the flat catalog reads used to build payloads.
// Full-catalog snapshots are sent per run, so there is no pagination.
type CatalogRepository interface {
	GetAllProducts(ctx context.Context) ([]domain.Product, error)
	GetAllCampaigns(ctx context.Context) ([]domain.Campaign, error)
}

// LoadEventRepository resolves and updates upstream load events.
type LoadEventRepository interface {
	// GetByProcessTypeAndLoadID returns nil, nil when no event exists.
	GetByProcessTypeAndLoadID(ctx context.Context, processType, loadID string) (*domain.LoadEvent, error)
	UpdateSyncedDealers(ctx context.Context, id int64, syncedDealers int, syncedPercent float64, actor string) error
}
