package postgres

import (
	"context"
	"fmt"

	"dealer-catalog-sync/internal/core/domain"
)

// DealerGroupRepo implements ports.DealerGroupStore over the dealer webhook
// snapshot table. Rows are per dealer; this repo reads them grouped by
// webhook URL and writes status per URL, so every dealer at an endpoint is
// updated by the one HTTP call that served them all.
type DealerGroupRepo struct {
	pool Pool
}

// NewDealerGroupRepo creates a new DealerGroupRepo.
func NewDealerGroupRepo(pool Pool) *DealerGroupRepo {
	return &DealerGroupRepo{pool: pool}
}

// GetActiveGroups returns dealers grouped by webhook URL for a load event,
// excluding groups already delivered. A resumed run therefore never
// re-delivers or double-counts a prior success.
func (r *DealerGroupRepo) GetActiveGroups(ctx context.Context, loadEventID int64) ([]domain.DealerWebhookGroup, error) {
	query := `SELECT webhook_url, secret,
			array_agg(dealer_id ORDER BY dealer_id) AS dealer_ids,
			max(status) AS status,
			max(retry_count) AS retry_count,
			max(last_attempt_at) AS last_attempt_at,
			max(last_error) AS last_error
		FROM dealer_webhooks
		WHERE load_event_id = $1
		  AND (status IS NULL OR status <> 'EXITOSO')
		GROUP BY webhook_url, secret
		ORDER BY webhook_url`

	rows, err := r.pool.Query(ctx, query, loadEventID)
	if err != nil {
		return nil, fmt.Errorf("get active dealer groups: %w", err)
	}
	defer rows.Close()

	var groups []domain.DealerWebhookGroup
	for rows.Next() {
		g := domain.DealerWebhookGroup{LoadEventID: loadEventID}
		var status *string
		if err := rows.Scan(
			&g.WebhookURL, &g.Secret, &g.DealerIDs,
			&status, &g.RetryCount, &g.LastAttemptAt, &g.LastError,
		); err != nil {
			return nil, fmt.Errorf("scan dealer group: %w", err)
		}
		if status != nil {
			s := domain.DeliveryStatus(*status)
			g.Status = &s
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// CountGroups returns the number of webhook URL groups for a load event
// regardless of delivery status. The payload metadata reports this total,
// so a resumed run announces the same target count the first attempt did.
func (r *DealerGroupRepo) CountGroups(ctx context.Context, loadEventID int64) (int, error) {
	query := `SELECT count(DISTINCT webhook_url)
		FROM dealer_webhooks
		WHERE load_event_id = $1`

	var n int
	if err := r.pool.QueryRow(ctx, query, loadEventID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count dealer groups: %w", err)
	}
	return n, nil
}

// MarkDelivered records a successful delivery for every dealer sharing the
// URL. Single conditional statement: a group another holder already closed
// is not rewritten.
func (r *DealerGroupRepo) MarkDelivered(ctx context.Context, webhookURL string, loadEventID int64, ackToken, actor string) error {
	query := `UPDATE dealer_webhooks
		SET status = 'EXITOSO', ack_token = $3, last_error = NULL,
		    last_attempt_at = now(), updated_by = $4, updated_at = now()
		WHERE webhook_url = $1 AND load_event_id = $2
		  AND (status IS NULL OR status <> 'EXITOSO')`

	_, err := r.pool.Exec(ctx, query, webhookURL, loadEventID, ackToken, actor)
	if err != nil {
		return fmt.Errorf("mark dealer group delivered: %w", err)
	}
	return nil
}

// MarkFailed records a failed attempt for every dealer sharing the URL and
// bumps the retry counter.
func (r *DealerGroupRepo) MarkFailed(ctx context.Context, webhookURL string, loadEventID int64, errMsg, actor string) error {
	query := `UPDATE dealer_webhooks
		SET status = 'FALLIDO', retry_count = retry_count + 1, last_error = $3,
		    last_attempt_at = now(), updated_by = $4, updated_at = now()
		WHERE webhook_url = $1 AND load_event_id = $2
		  AND (status IS NULL OR status <> 'EXITOSO')`

	_, err := r.pool.Exec(ctx, query, webhookURL, loadEventID, errMsg, actor)
	if err != nil {
		return fmt.Errorf("mark dealer group failed: %w", err)
	}
	return nil
}
