package ports

import (
	"context"
	"time"

	"dealer-catalog-sync/internal/core/domain"
)

// LockHandle identifies one acquisition of a process-type lock. The token is
// the holder's proof of ownership: release and renewal only act when the
// stored token still matches it.
type LockHandle struct {
	ProcessType string
	Token       string
	Expiry      time.Duration
}

// DistributedLock is a named mutex in a shared store, scoped per process
// type. At most one holder exists per process type until release or expiry.
type DistributedLock interface {
	// Acquire returns nil, nil when the lock is already held — contention is
	// the normal "another run is in progress" outcome, not an error. A store
	// failure is returned as an error: mutual exclusion must not degrade
	// silently.
	Acquire(ctx context.Context, processType string, expiry time.Duration) (*LockHandle, error)

	// Release removes the lock only if the stored token matches the handle's
	// (single scripted compare-and-delete). Idempotent; an expired or
	// taken-over lock is a logged no-op.
	Release(ctx context.Context, handle *LockHandle) error

	// Renew extends the expiry only if the stored token matches. Returns
	// false on mismatch so the caller can abort instead of running unlocked.
	Renew(ctx context.Context, processType, token string, newExpiry time.Duration) (bool, error)

	// IsActive reports key existence. Status reporting only; acquisition
	// decisions go through Acquire, which is atomic.
	IsActive(ctx context.Context, processType string) (bool, error)
}

// DeliveryClient performs one webhook POST per dealer group URL. Ordinary
// delivery failures (timeout, refused connection, non-2xx, auth rejection)
// never surface as errors; they are classified inside the result. The error
// return is reserved for invalid arguments.
type DeliveryClient interface {
	Deliver(ctx context.Context, url, secret string, body []byte) (*domain.DeliveryResult, error)
}

// PayloadBuilder assembles the process-specific catalog payload plus its
// metadata envelope. Process types without a catalog implementation get a
// metadata-only payload with record count 0.
type PayloadBuilder interface {
	Build(ctx context.Context, processType string, event *domain.LoadEvent, webhookTargets int) (*domain.SyncPayload, error)
}

// SyncService is the batch synchronization orchestrator.
type SyncService interface {
	// RequestSync looks up or creates the run for (processType, loadID) and
	// tries to start it under the process-type lock. started is false when
	// the lock was denied: the run stays PENDING and another run is active.
	RequestSync(ctx context.Context, processType, loadID string) (run *domain.SyncRun, started bool, err error)

	// GetRun returns a run with its live counters.
	GetRun(ctx context.Context, id int64) (*domain.SyncRun, error)

	// IsLockActive reports whether a sync for the process type holds the lock.
	IsLockActive(ctx context.Context, processType string) (bool, error)

	// Shutdown cancels in-flight runs and waits for them to finish.
	Shutdown()
}
