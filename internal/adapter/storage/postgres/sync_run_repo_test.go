package postgres

import (
	"context"
	"testing"
	"time"

	"dealer-catalog-sync/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var syncRunCols = []string{
	"id", "process_type", "load_id", "load_date", "load_event_id",
	"job_handle_id", "lock_token", "status", "started_at", "finished_at",
	"webhooks_total", "webhooks_processed", "webhooks_failed", "webhooks_skipped",
	"error_message", "error_details", "created_at", "updated_at",
}

func pendingRunRow(id int64, processType, loadID string, loadDate, now time.Time) *pgxmock.Rows {
	return pgxmock.NewRows(syncRunCols).AddRow(
		id, processType, loadID, loadDate, (*int64)(nil),
		(*string)(nil), (*string)(nil), "PENDING", (*time.Time)(nil), (*time.Time)(nil),
		0, 0, 0, 0,
		(*string)(nil), (*string)(nil), now, now,
	)
}

func TestSyncRunRepo_GetOrCreate_Existing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSyncRunRepo(mock)
	loadDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC().Truncate(time.Microsecond)

	mock.ExpectQuery("SELECT .+ FROM sync_runs\\s+WHERE process_type").
		WithArgs("ProductList", "L-100", loadDate).
		WillReturnRows(pendingRunRow(5, "ProductList", "L-100", loadDate, now))

	run, err := repo.GetOrCreate(context.Background(), "ProductList", "L-100", loadDate)
	require.NoError(t, err)
	assert.Equal(t, int64(5), run.ID)
	assert.Equal(t, domain.SyncRunStatusPending, run.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncRunRepo_GetOrCreate_Inserts(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSyncRunRepo(mock)
	loadDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC().Truncate(time.Microsecond)

	mock.ExpectQuery("SELECT .+ FROM sync_runs\\s+WHERE process_type").
		WithArgs("ProductList", "L-100", loadDate).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("INSERT INTO sync_runs").
		WithArgs("ProductList", "L-100", loadDate).
		WillReturnRows(pendingRunRow(6, "ProductList", "L-100", loadDate, now))

	run, err := repo.GetOrCreate(context.Background(), "ProductList", "L-100", loadDate)
	require.NoError(t, err)
	assert.Equal(t, int64(6), run.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncRunRepo_GetOrCreate_LostInsertRace(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSyncRunRepo(mock)
	loadDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC().Truncate(time.Microsecond)

	mock.ExpectQuery("SELECT .+ FROM sync_runs\\s+WHERE process_type").
		WillReturnError(pgx.ErrNoRows)
	// Conflicting concurrent insert: ON CONFLICT DO NOTHING returns no row.
	mock.ExpectQuery("INSERT INTO sync_runs").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("SELECT .+ FROM sync_runs\\s+WHERE process_type").
		WillReturnRows(pendingRunRow(7, "ProductList", "L-100", loadDate, now))

	run, err := repo.GetOrCreate(context.Background(), "ProductList", "L-100", loadDate)
	require.NoError(t, err)
	assert.Equal(t, int64(7), run.ID, "both creators converge on the same row")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncRunRepo_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSyncRunRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM sync_runs WHERE id").
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	run, err := repo.GetByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, run)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncRunRepo_SetRunning(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSyncRunRepo(mock)

	mock.ExpectExec("UPDATE sync_runs").
		WithArgs(int64(5), "job-1", "token-1", "sync-service").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.SetRunning(context.Background(), 5, "job-1", "token-1", "sync-service")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncRunRepo_SetRunning_TerminalRun(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSyncRunRepo(mock)

	mock.ExpectExec("UPDATE sync_runs").
		WithArgs(int64(5), "job-1", "token-1", "sync-service").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.SetRunning(context.Background(), 5, "job-1", "token-1", "sync-service")
	assert.Error(t, err, "guarded transition refuses a terminal run")
}

func TestSyncRunRepo_IncrementCounters(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSyncRunRepo(mock)

	mock.ExpectExec("UPDATE sync_runs").
		WithArgs(int64(5), 1, 0, 0, "sync-service").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.IncrementCounters(context.Background(), 5, 1, 0, 0, "sync-service")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncRunRepo_SetCompleted(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSyncRunRepo(mock)
	counts := domain.RunCounts{Total: 10, Processed: 8, Failed: 1, Skipped: 1}

	mock.ExpectExec("UPDATE sync_runs").
		WithArgs(int64(5), 10, 8, 1, 1, "sync-service").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.SetCompleted(context.Background(), 5, counts, "sync-service")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncRunRepo_SetCompleted_InconsistentCounts(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSyncRunRepo(mock)

	// 2+1+1 != 5: refused before any statement reaches the database.
	counts := domain.RunCounts{Total: 5, Processed: 2, Failed: 1, Skipped: 1}
	err = repo.SetCompleted(context.Background(), 5, counts, "sync-service")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncRunRepo_SetFailed_AlreadyTerminal(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewSyncRunRepo(mock)

	mock.ExpectExec("UPDATE sync_runs").
		WithArgs(int64(5), "lock lost", "renewal rejected", "sync-service").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.SetFailed(context.Background(), 5, "lock lost", "renewal rejected", "sync-service")
	assert.Error(t, err, "terminal runs are immutable")
}
