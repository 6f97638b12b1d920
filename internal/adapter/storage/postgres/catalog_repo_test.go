package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogRepo_GetAllProducts(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCatalogRepo(mock)
	updated := time.Now().UTC().Truncate(time.Microsecond)

	mock.ExpectQuery("SELECT id, code, description, family, brand, list_price, updated_at").
		WillReturnRows(pgxmock.NewRows([]string{"id", "code", "description", "family", "brand", "list_price", "updated_at"}).
			AddRow(int64(1), "ACDELCO-41-110", "Spark plug", "Ignition", "ACDelco", int64(12500), updated).
			AddRow(int64(2), "GM-12681013", "Oil filter", "Engine", "GM Genuine", int64(18900), updated))

	products, err := repo.GetAllProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "ACDELCO-41-110", products[0].Code)
	assert.Equal(t, int64(18900), products[1].ListPrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepo_GetAllCampaigns(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCatalogRepo(mock)
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	mock.ExpectQuery("SELECT id, code, name, start_date, end_date").
		WillReturnRows(pgxmock.NewRows([]string{"id", "code", "name", "start_date", "end_date"}).
			AddRow(int64(1), "SPRING-26", "Spring service campaign", start, end))

	campaigns, err := repo.GetAllCampaigns(context.Background())
	require.NoError(t, err)
	require.Len(t, campaigns, 1)
	assert.Equal(t, "SPRING-26", campaigns[0].Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepo_GetByProcessTypeAndLoadID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCatalogRepo(mock)
	loadDate := time.Date(2026, 3, 10, 6, 30, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT id, process_type, load_id, load_date, total_dealers").
		WithArgs("ProductList", "L-100").
		WillReturnRows(pgxmock.NewRows([]string{"id", "process_type", "load_id", "load_date", "total_dealers", "synced_dealers", "synced_percent"}).
			AddRow(int64(42), "ProductList", "L-100", loadDate, 120, 0, 0.0))

	event, err := repo.GetByProcessTypeAndLoadID(context.Background(), "ProductList", "L-100")
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, int64(42), event.ID)
	assert.Equal(t, 120, event.TotalDealers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepo_GetByProcessTypeAndLoadID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCatalogRepo(mock)

	mock.ExpectQuery("SELECT id, process_type, load_id, load_date, total_dealers").
		WithArgs("ProductList", "L-999").
		WillReturnError(pgx.ErrNoRows)

	event, err := repo.GetByProcessTypeAndLoadID(context.Background(), "ProductList", "L-999")
	require.NoError(t, err)
	assert.Nil(t, event, "missing load event is nil, nil — the service classifies it")
}

func TestCatalogRepo_UpdateSyncedDealers(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewCatalogRepo(mock)

	mock.ExpectExec("UPDATE load_events").
		WithArgs(int64(42), 96, 80.0, "sync-service").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.UpdateSyncedDealers(context.Background(), 42, 96, 80.0, "sync-service")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
