package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dealer-catalog-sync/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

const syncRunColumns = `id, process_type, load_id, load_date, load_event_id,
	job_handle_id, lock_token, status, started_at, finished_at,
	webhooks_total, webhooks_processed, webhooks_failed, webhooks_skipped,
	error_message, error_details, created_at, updated_at`

// SyncRunRepo implements ports.SyncRunRegistry.
//
// The sync_runs table carries a partial unique index on
// (process_type, load_id, load_date) WHERE status IN ('PENDING','RUNNING'):
// one live run per load tuple, while terminal runs keep their history and a
// re-request after FAILED gets a fresh row.
type SyncRunRepo struct {
	pool Pool
}

// NewSyncRunRepo creates a new SyncRunRepo.
func NewSyncRunRepo(pool Pool) *SyncRunRepo {
	return &SyncRunRepo{pool: pool}
}

// GetOrCreate returns the live run for the tuple, inserting a PENDING row if
// none exists. Concurrent callers racing on the insert converge on the same
// row through the unique index.
func (r *SyncRunRepo) GetOrCreate(ctx context.Context, processType, loadID string, loadDate time.Time) (*domain.SyncRun, error) {
	run, err := r.getActive(ctx, processType, loadID, loadDate)
	if err != nil {
		return nil, err
	}
	if run != nil {
		return run, nil
	}

	query := `INSERT INTO sync_runs (process_type, load_id, load_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, 'PENDING', now(), now())
		ON CONFLICT (process_type, load_id, load_date) WHERE status IN ('PENDING','RUNNING') DO NOTHING
		RETURNING ` + syncRunColumns

	run, err = r.scanRun(r.pool.QueryRow(ctx, query, processType, loadID, loadDate))
	if err == nil {
		return run, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("insert sync run: %w", err)
	}

	// Lost the insert race: someone else created the live row.
	run, err = r.getActive(ctx, processType, loadID, loadDate)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, fmt.Errorf("sync run for (%s, %s) vanished after conflicting insert", processType, loadID)
	}
	return run, nil
}

func (r *SyncRunRepo) getActive(ctx context.Context, processType, loadID string, loadDate time.Time) (*domain.SyncRun, error) {
	query := `SELECT ` + syncRunColumns + ` FROM sync_runs
		WHERE process_type = $1 AND load_id = $2 AND load_date = $3
		  AND status IN ('PENDING','RUNNING')`

	run, err := r.scanRun(r.pool.QueryRow(ctx, query, processType, loadID, loadDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active sync run: %w", err)
	}
	return run, nil
}

// GetByID fetches a run by id. Returns nil, nil when the run does not exist.
func (r *SyncRunRepo) GetByID(ctx context.Context, id int64) (*domain.SyncRun, error) {
	query := `SELECT ` + syncRunColumns + ` FROM sync_runs WHERE id = $1`

	run, err := r.scanRun(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sync run: %w", err)
	}
	return run, nil
}

// SetRunning transitions a run to RUNNING, recording the lock token and the
// background job handle. RUNNING rows are re-takeable: a crashed holder
// leaves the row RUNNING with an expired lease, and the next lock winner
// resumes it with a fresh token and handle. Only the distributed lock
// arbitrates who may start; the guard just keeps terminal rows immutable.
func (r *SyncRunRepo) SetRunning(ctx context.Context, id int64, jobHandleID, lockToken, actor string) error {
	query := `UPDATE sync_runs
		SET status = 'RUNNING', job_handle_id = $2, lock_token = $3,
		    started_at = now(), updated_by = $4, updated_at = now()
		WHERE id = $1 AND status IN ('PENDING', 'RUNNING')`

	tag, err := r.pool.Exec(ctx, query, id, jobHandleID, lockToken, actor)
	if err != nil {
		return fmt.Errorf("set sync run running: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sync run %d is terminal", id)
	}
	return nil
}

// SetTotal records the webhook group count at fan-out start.
func (r *SyncRunRepo) SetTotal(ctx context.Context, id int64, total int, actor string) error {
	query := `UPDATE sync_runs
		SET webhooks_total = $2, updated_by = $3, updated_at = now()
		WHERE id = $1 AND status = 'RUNNING'`

	tag, err := r.pool.Exec(ctx, query, id, total, actor)
	if err != nil {
		return fmt.Errorf("set sync run total: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sync run %d is not RUNNING", id)
	}
	return nil
}

// IncrementCounters adds deltas to the run counters in one statement, so a
// crashed run never leaves half-applied counts.
func (r *SyncRunRepo) IncrementCounters(ctx context.Context, id int64, processed, failed, skipped int, actor string) error {
	query := `UPDATE sync_runs
		SET webhooks_processed = webhooks_processed + $2,
		    webhooks_failed = webhooks_failed + $3,
		    webhooks_skipped = webhooks_skipped + $4,
		    updated_by = $5, updated_at = now()
		WHERE id = $1 AND status = 'RUNNING'`

	tag, err := r.pool.Exec(ctx, query, id, processed, failed, skipped, actor)
	if err != nil {
		return fmt.Errorf("increment sync run counters: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sync run %d is not RUNNING", id)
	}
	return nil
}

// SetCompleted transitions RUNNING -> COMPLETED with the final counts.
// Counts that do not add up to the groups seen at start are refused: a
// completed run must account for every group.
func (r *SyncRunRepo) SetCompleted(ctx context.Context, id int64, counts domain.RunCounts, actor string) error {
	if !counts.Consistent() {
		return fmt.Errorf("sync run %d counts do not add up: %d+%d+%d != %d",
			id, counts.Processed, counts.Failed, counts.Skipped, counts.Total)
	}

	query := `UPDATE sync_runs
		SET status = 'COMPLETED',
		    webhooks_total = $2, webhooks_processed = $3,
		    webhooks_failed = $4, webhooks_skipped = $5,
		    finished_at = now(), updated_by = $6, updated_at = now()
		WHERE id = $1 AND status = 'RUNNING'`

	tag, err := r.pool.Exec(ctx, query, id,
		counts.Total, counts.Processed, counts.Failed, counts.Skipped, actor)
	if err != nil {
		return fmt.Errorf("set sync run completed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sync run %d is not RUNNING", id)
	}
	return nil
}

// SetFailed transitions RUNNING -> FAILED with the failure reason.
func (r *SyncRunRepo) SetFailed(ctx context.Context, id int64, errMsg, errDetails, actor string) error {
	query := `UPDATE sync_runs
		SET status = 'FAILED', error_message = $2, error_details = $3,
		    finished_at = now(), updated_by = $4, updated_at = now()
		WHERE id = $1 AND status IN ('PENDING','RUNNING')`

	tag, err := r.pool.Exec(ctx, query, id, errMsg, errDetails, actor)
	if err != nil {
		return fmt.Errorf("set sync run failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sync run %d is already terminal", id)
	}
	return nil
}

func (r *SyncRunRepo) scanRun(row pgx.Row) (*domain.SyncRun, error) {
	run := &domain.SyncRun{}
	var status string
	err := row.Scan(
		&run.ID, &run.ProcessType, &run.LoadID, &run.LoadDate, &run.LoadEventID,
		&run.JobHandleID, &run.LockToken, &status, &run.StartedAt, &run.FinishedAt,
		&run.WebhooksTotal, &run.WebhooksProcessed, &run.WebhooksFailed, &run.WebhooksSkipped,
		&run.ErrorMessage, &run.ErrorDetails, &run.CreatedAt, &run.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	run.Status = domain.SyncRunStatus(status)
	return run, nil
}
