package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"dealer-catalog-sync/config"
	"dealer-catalog-sync/internal/core/domain"
	"dealer-catalog-sync/internal/core/ports"
	"dealer-catalog-sync/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// finalizeTimeout bounds the terminal status write and the lock release
// after the run's own context is gone (shutdown path).
const finalizeTimeout = 10 * time.Second

// syncService orchestrates dealer webhook synchronization runs. One run per
// process type at a time, enforced by the distributed lock; the run record
// in the registry is the durable trace of what happened.
type syncService struct {
	runs       ports.SyncRunRegistry
	groups     ports.DealerGroupStore
	loadEvents ports.LoadEventRepository
	lock       ports.DistributedLock
	delivery   ports.DeliveryClient
	payload    ports.PayloadBuilder

	enabled         map[string]bool
	lockExpiry      time.Duration
	renewInterval   time.Duration
	deliveryTimeout time.Duration
	fanout          int
	actor           string
	log             zerolog.Logger

	// rootCtx is cancelled by Shutdown; every background run derives from it.
	rootCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewSyncService creates the batch synchronization orchestrator.
func NewSyncService(
	cfg config.SyncConfig,
	runs ports.SyncRunRegistry,
	groups ports.DealerGroupStore,
	loadEvents ports.LoadEventRepository,
	lock ports.DistributedLock,
	delivery ports.DeliveryClient,
	payload ports.PayloadBuilder,
	log zerolog.Logger,
) ports.SyncService {
	rootCtx, cancel := context.WithCancel(context.Background())
	return &syncService{
		runs:            runs,
		groups:          groups,
		loadEvents:      loadEvents,
		lock:            lock,
		delivery:        delivery,
		payload:         payload,
		enabled:         cfg.EnabledProcessTypes(),
		lockExpiry:      cfg.LockExpiry,
		renewInterval:   cfg.RenewInterval,
		deliveryTimeout: cfg.DeliveryTimeout,
		fanout:          cfg.Fanout,
		actor:           "sync-service",
		log:             log,
		rootCtx:         rootCtx,
		cancel:          cancel,
	}
}

// RequestSync resolves the load event, gets or creates the run for its
// (processType, loadID, loadDate) tuple and tries to start it. Lock denial
// is the normal concurrent-trigger outcome: the caller gets the existing
// run back with started false.
func (s *syncService) RequestSync(ctx context.Context, processType, loadID string) (*domain.SyncRun, bool, error) {
	if !s.enabled[processType] {
		return nil, false, apperror.ErrProcessTypeDisabled(processType)
	}
	if strings.TrimSpace(loadID) == "" {
		return nil, false, apperror.Validation("load id must not be empty")
	}

	event, err := s.loadEvents.GetByProcessTypeAndLoadID(ctx, processType, loadID)
	if err != nil {
		return nil, false, apperror.ErrDatabaseError(err)
	}
	if event == nil {
		return nil, false, apperror.ErrLoadEventNotFound(processType, loadID)
	}

	run, err := s.runs.GetOrCreate(ctx, processType, loadID, event.LoadDate)
	if err != nil {
		return nil, false, apperror.ErrDatabaseError(err)
	}

	// Startable means PENDING (normal) or RUNNING: a RUNNING row is not
	// proof of a live run, since a crashed holder leaves the row RUNNING
	// while its lease expires. The lock acquisition below is the sole
	// arbiter; winning it over a stale RUNNING row resumes the load.
	startable := run.Status == domain.SyncRunStatusRunning ||
		run.Status.CanTransitionTo(domain.SyncRunStatusRunning)
	if !startable {
		return nil, false, apperror.ErrInvalidRunTransition(
			fmt.Errorf("sync run %d is %s", run.ID, run.Status))
	}

	handle, err := s.lock.Acquire(ctx, processType, s.lockExpiry)
	if err != nil {
		return nil, false, apperror.ErrLockStoreUnavailable(err)
	}
	if handle == nil {
		// Another instance holds the lock. The run keeps its current status
		// and will be picked up by a later trigger once the holder finishes.
		s.log.Info().
			Str("process_type", processType).
			Str("load_id", loadID).
			Int64("run_id", run.ID).
			Msg("sync already running, trigger ignored")
		return run, false, nil
	}

	jobHandleID := uuid.NewString()
	if err := s.runs.SetRunning(ctx, run.ID, jobHandleID, handle.Token, s.actor); err != nil {
		s.releaseLock(handle)
		return nil, false, apperror.ErrInvalidRunTransition(err)
	}

	now := time.Now()
	run.Status = domain.SyncRunStatusRunning
	run.JobHandleID = &jobHandleID
	run.LoadEventID = &event.ID
	run.StartedAt = &now

	s.log.Info().
		Str("process_type", processType).
		Str("load_id", loadID).
		Int64("run_id", run.ID).
		Str("job_handle_id", jobHandleID).
		Msg("sync run started")

	s.wg.Add(1)
	go s.execute(run.ID, processType, event, handle)

	return run, true, nil
}

// GetRun returns a run with its live counters.
func (s *syncService) GetRun(ctx context.Context, id int64) (*domain.SyncRun, error) {
	run, err := s.runs.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if run == nil {
		return nil, apperror.ErrRunNotFound(id)
	}
	return run, nil
}

// IsLockActive reports whether the process-type lock is currently held.
func (s *syncService) IsLockActive(ctx context.Context, processType string) (bool, error) {
	active, err := s.lock.IsActive(ctx, processType)
	if err != nil {
		return false, apperror.ErrLockStoreUnavailable(err)
	}
	return active, nil
}

// Shutdown cancels in-flight runs and waits for them to finalize. Runs cut
// short are marked FAILED so a later trigger re-synchronizes the load.
func (s *syncService) Shutdown() {
	s.cancel()
	s.wg.Wait()
}

// execute is the background body of one run. It owns the lock handle for the
// run's whole lifetime: renewal while working, release on the way out.
func (s *syncService) execute(runID int64, processType string, event *domain.LoadEvent, handle *ports.LockHandle) {
	defer s.wg.Done()
	defer s.releaseLock(handle)

	ctx, cancelRun := context.WithCancel(s.rootCtx)

	// Renewal runs beside the fan-out. A failed compare-and-expire means the
	// lease lapsed and someone else may hold the lock now, so the run must
	// stop writing rather than race the new holder.
	lost := make(chan struct{})
	var renewWG sync.WaitGroup
	renewWG.Add(1)
	go func() {
		defer renewWG.Done()
		s.renewLoop(ctx, processType, handle.Token, lost)
	}()
	defer func() {
		cancelRun()
		renewWG.Wait()
	}()

	log := s.log.With().
		Int64("run_id", runID).
		Str("process_type", processType).
		Str("load_id", event.LoadID).
		Logger()

	groups, err := s.groups.GetActiveGroups(ctx, event.ID)
	if err != nil {
		s.failRun(runID, "loading dealer webhook groups failed", err.Error(), log)
		return
	}

	if len(groups) == 0 {
		// Everything already delivered on a previous run, or no dealers.
		s.completeRun(runID, event, domain.RunCounts{}, 0, log)
		return
	}

	// Metadata reports the full target count for the load, delivered groups
	// included. A resumed run announces the same total the first attempt did.
	totalTargets, err := s.groups.CountGroups(ctx, event.ID)
	if err != nil {
		s.failRun(runID, "counting dealer webhook groups failed", err.Error(), log)
		return
	}

	payload, err := s.payload.Build(ctx, processType, event, totalTargets)
	if err != nil {
		s.failRun(runID, "building catalog payload failed", err.Error(), log)
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		s.failRun(runID, "encoding catalog payload failed", err.Error(), log)
		return
	}

	if err := s.runs.SetTotal(ctx, runID, len(groups), s.actor); err != nil {
		s.failRun(runID, "recording webhook group total failed", err.Error(), log)
		return
	}

	log.Info().Int("groups", len(groups)).Int("payload_bytes", len(body)).Msg("fanning out webhook deliveries")

	counts, syncedDealers, aborted := s.fanOut(ctx, runID, groups, body, lost, log)

	select {
	case <-lost:
		s.failRun(runID, "distributed lock lost during run",
			fmt.Sprintf("lease expired before renewal, %d of %d groups done", counts.Processed+counts.Failed+counts.Skipped, counts.Total), log)
		return
	default:
	}
	if aborted || ctx.Err() != nil {
		s.failRun(runID, "run interrupted by shutdown",
			fmt.Sprintf("%d of %d groups done", counts.Processed+counts.Failed+counts.Skipped, counts.Total), log)
		return
	}

	s.completeRun(runID, event, counts, syncedDealers, log)
}

// renewLoop extends the lock lease every renewInterval. Closes lost when the
// stored token no longer matches. Transient store errors are tolerated: the
// lease still has slack until the next tick.
func (s *syncService) renewLoop(ctx context.Context, processType, token string, lost chan<- struct{}) {
	ticker := time.NewTicker(s.renewInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ok, err := s.lock.Renew(ctx, processType, token, s.lockExpiry)
			if err != nil {
				s.log.Warn().Err(err).Str("process_type", processType).Msg("lock renewal attempt failed")
				continue
			}
			if !ok {
				s.log.Error().Str("process_type", processType).Msg("lock no longer held, aborting run")
				close(lost)
				return
			}
		}
	}
}

// fanOut delivers the payload to every group with bounded concurrency.
// Returns the outcome counters, the number of dealers behind successfully
// delivered groups, and whether dispatch stopped early.
func (s *syncService) fanOut(ctx context.Context, runID int64, groups []domain.DealerWebhookGroup, body []byte, lost <-chan struct{}, log zerolog.Logger) (domain.RunCounts, int, bool) {
	counts := domain.RunCounts{Total: len(groups)}
	syncedDealers := 0
	aborted := false

	sem := make(chan struct{}, s.fanout)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, group := range groups {
		select {
		case <-lost:
			aborted = true
		case <-ctx.Done():
			aborted = true
		default:
		}
		if aborted {
			break
		}

		if strings.TrimSpace(group.WebhookURL) == "" {
			mu.Lock()
			counts.Skipped++
			mu.Unlock()
			s.recordCounters(runID, 0, 0, 1, log)
			log.Warn().Strs("dealer_ids", group.DealerIDs).Msg("group has no webhook url, skipped")
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(group domain.DealerWebhookGroup) {
			defer wg.Done()
			defer func() { <-sem }()

			delivered := s.deliverGroup(ctx, runID, group, body, log)
			mu.Lock()
			if delivered {
				counts.Processed++
				syncedDealers += len(group.DealerIDs)
			} else {
				counts.Failed++
			}
			mu.Unlock()
		}(group)
	}
	wg.Wait()

	return counts, syncedDealers, aborted
}

// deliverGroup POSTs to one group's webhook, persists the per-URL delivery
// state and bumps the run counters. Returns true on successful delivery.
func (s *syncService) deliverGroup(ctx context.Context, runID int64, group domain.DealerWebhookGroup, body []byte, log zerolog.Logger) bool {
	dctx, cancel := context.WithTimeout(ctx, s.deliveryTimeout)
	defer cancel()

	result, err := s.delivery.Deliver(dctx, group.WebhookURL, group.Secret, body)
	if err != nil {
		// Invalid argument, not a delivery outcome. Treated like a failed
		// delivery so the group stays retryable after the data is fixed.
		result = &domain.DeliveryResult{ErrorMsg: err.Error()}
	}

	if result.Success {
		if err := s.groups.MarkDelivered(ctx, group.WebhookURL, group.LoadEventID, result.AckToken, s.actor); err != nil {
			log.Error().Err(err).Str("url", group.WebhookURL).Msg("recording delivery success failed")
		}
		s.recordCounters(runID, 1, 0, 0, log)
		return true
	}

	if err := s.groups.MarkFailed(ctx, group.WebhookURL, group.LoadEventID, result.ErrorMsg, s.actor); err != nil {
		log.Error().Err(err).Str("url", group.WebhookURL).Msg("recording delivery failure failed")
	}
	s.recordCounters(runID, 0, 1, 0, log)
	return false
}

// recordCounters bumps the live run counters. Best effort: the final
// SetCompleted write is authoritative, so a failed increment only degrades
// mid-run visibility.
func (s *syncService) recordCounters(runID int64, processed, failed, skipped int, log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), finalizeTimeout)
	defer cancel()
	if err := s.runs.IncrementCounters(ctx, runID, processed, failed, skipped, s.actor); err != nil {
		log.Warn().Err(err).Msg("updating live run counters failed")
	}
}

func (s *syncService) completeRun(runID int64, event *domain.LoadEvent, counts domain.RunCounts, syncedDealers int, log zerolog.Logger) {
	fctx, cancel := context.WithTimeout(context.Background(), finalizeTimeout)
	defer cancel()

	if err := s.runs.SetCompleted(fctx, runID, counts, s.actor); err != nil {
		log.Error().Err(err).Msg("marking run completed failed")
		return
	}

	percent := 0.0
	if event.TotalDealers > 0 {
		percent = float64(syncedDealers) / float64(event.TotalDealers) * 100
	}
	if err := s.loadEvents.UpdateSyncedDealers(fctx, event.ID, syncedDealers, percent, s.actor); err != nil {
		log.Error().Err(err).Msg("updating load event progress failed")
	}

	log.Info().
		Int("processed", counts.Processed).
		Int("failed", counts.Failed).
		Int("skipped", counts.Skipped).
		Int("synced_dealers", syncedDealers).
		Msg("sync run completed")
}

func (s *syncService) failRun(runID int64, msg, details string, log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), finalizeTimeout)
	defer cancel()

	if err := s.runs.SetFailed(ctx, runID, msg, details, s.actor); err != nil {
		log.Error().Err(err).Msg("marking run failed failed")
	}
	log.Error().Str("reason", msg).Str("details", details).Msg("sync run failed")
}

// releaseLock returns the lock with its own deadline so release survives the
// run context being gone.
func (s *syncService) releaseLock(handle *ports.LockHandle) {
	ctx, cancel := context.WithTimeout(context.Background(), finalizeTimeout)
	defer cancel()
	if err := s.lock.Release(ctx, handle); err != nil {
		s.log.Warn().Err(err).Str("process_type", handle.ProcessType).Msg("lock release failed")
	}
}
