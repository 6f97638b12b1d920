package postgres

import (
	"context"
	"errors"
	"fmt"

	"dealer-catalog-sync/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// CatalogRepo implements ports.CatalogRepository and ports.LoadEventRepository.
// Payloads carry a full-catalog snapshot, so the reads are flat and unpaginated.
type CatalogRepo struct {
	pool Pool
}

// NewCatalogRepo creates a new CatalogRepo.
func NewCatalogRepo(pool Pool) *CatalogRepo {
	return &CatalogRepo{pool: pool}
}

// GetAllProducts returns the full product catalog snapshot.
func (r *CatalogRepo) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT id, code, description, family, brand, list_price, updated_at
		FROM products ORDER BY code`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Code, &p.Description, &p.Family, &p.Brand, &p.ListPrice, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetAllCampaigns returns the full campaign catalog snapshot.
func (r *CatalogRepo) GetAllCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	query := `SELECT id, code, name, start_date, end_date
		FROM campaigns ORDER BY code`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []domain.Campaign
	for rows.Next() {
		var c domain.Campaign
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.StartDate, &c.EndDate); err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

// GetByProcessTypeAndLoadID resolves the upstream load event a sync run
// operates against. Returns nil, nil when no event exists.
func (r *CatalogRepo) GetByProcessTypeAndLoadID(ctx context.Context, processType, loadID string) (*domain.LoadEvent, error) {
	query := `SELECT id, process_type, load_id, load_date, total_dealers, synced_dealers, synced_percent
		FROM load_events WHERE process_type = $1 AND load_id = $2`

	e := &domain.LoadEvent{}
	err := r.pool.QueryRow(ctx, query, processType, loadID).Scan(
		&e.ID, &e.ProcessType, &e.LoadID, &e.LoadDate,
		&e.TotalDealers, &e.SyncedDealers, &e.SyncedPercent,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get load event: %w", err)
	}
	return e, nil
}

// UpdateSyncedDealers records the synchronized-dealer progress on the load event.
func (r *CatalogRepo) UpdateSyncedDealers(ctx context.Context, id int64, syncedDealers int, syncedPercent float64, actor string) error {
	query := `UPDATE load_events
		SET synced_dealers = $2, synced_percent = $3, updated_by = $4, updated_at = now()
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, syncedDealers, syncedPercent, actor)
	if err != nil {
		return fmt.Errorf("update load event synced dealers: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("load event %d not found", id)
	}
	return nil
}
