package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"dealer-catalog-sync/internal/core/domain"
	"dealer-catalog-sync/internal/core/ports/mocks"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testLoadEvent() *domain.LoadEvent {
	return &domain.LoadEvent{
		ID:           42,
		ProcessType:  domain.ProcessTypeProductList,
		LoadID:       "LOAD-2024-001",
		LoadDate:     time.Date(2024, 3, 15, 10, 30, 0, 500, time.UTC),
		TotalDealers: 120,
	}
}

func TestPayloadBuilder_Build_ProductList(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	catalogRepo := mocks.NewMockCatalogRepository(ctrl)
	builder := NewPayloadBuilder(catalogRepo, zerolog.Nop())

	products := []domain.Product{
		{ID: 1, Code: "ACD-4908", Description: "Oil filter", Family: "Filters", Brand: "ACDelco", ListPrice: 12990},
		{ID: 2, Code: "GM-12681", Description: "Spark plug", Family: "Ignition", Brand: "GM Genuine", ListPrice: 8490},
	}
	catalogRepo.EXPECT().GetAllProducts(gomock.Any()).Return(products, nil)

	event := testLoadEvent()
	payload, err := builder.Build(context.Background(), domain.ProcessTypeProductList, event, 7)

	require.NoError(t, err)
	assert.Equal(t, products, payload.Products)
	assert.Empty(t, payload.Campaigns)
	assert.Equal(t, len(products), payload.Metadata.RecordCount)
	assert.Equal(t, event.ID, payload.Metadata.ProcessID)
	assert.Equal(t, domain.ProcessTypeProductList, payload.Metadata.ProcessType)
	assert.Equal(t, event.LoadID, payload.Metadata.LoadID)
	assert.Equal(t, 7, payload.Metadata.WebhookTargets)
}

func TestPayloadBuilder_Build_CampaignList(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	catalogRepo := mocks.NewMockCatalogRepository(ctrl)
	builder := NewPayloadBuilder(catalogRepo, zerolog.Nop())

	campaigns := []domain.Campaign{
		{ID: 10, Code: "WINTER-24", Name: "Winter service campaign"},
	}
	catalogRepo.EXPECT().GetAllCampaigns(gomock.Any()).Return(campaigns, nil)

	payload, err := builder.Build(context.Background(), domain.ProcessTypeCampaignList, testLoadEvent(), 3)

	require.NoError(t, err)
	assert.Equal(t, campaigns, payload.Campaigns)
	assert.Empty(t, payload.Products)
	assert.Equal(t, 1, payload.Metadata.RecordCount)
}

func TestPayloadBuilder_Build_LoadDateSecondsPrecision(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	catalogRepo := mocks.NewMockCatalogRepository(ctrl)
	builder := NewPayloadBuilder(catalogRepo, zerolog.Nop())

	catalogRepo.EXPECT().GetAllProducts(gomock.Any()).Return(nil, nil)

	event := testLoadEvent()
	event.LoadDate = time.Date(2024, 3, 15, 10, 30, 45, 987654321, time.FixedZone("CLT", -4*3600))

	payload, err := builder.Build(context.Background(), domain.ProcessTypeProductList, event, 1)

	require.NoError(t, err)
	// Normalized to UTC, sub-second precision dropped.
	assert.Equal(t, "2024-03-15T14:30:45Z", payload.Metadata.LoadDate)
}

func TestPayloadBuilder_Build_UnknownProcessType(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No catalog expectations: unknown types must not touch the catalog.
	catalogRepo := mocks.NewMockCatalogRepository(ctrl)
	builder := NewPayloadBuilder(catalogRepo, zerolog.Nop())

	payload, err := builder.Build(context.Background(), "DealerList", testLoadEvent(), 2)

	require.NoError(t, err)
	assert.Empty(t, payload.Products)
	assert.Empty(t, payload.Campaigns)
	assert.Equal(t, 0, payload.Metadata.RecordCount)
	assert.Equal(t, "DealerList", payload.Metadata.ProcessType)
}

func TestPayloadBuilder_Build_NilEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	builder := NewPayloadBuilder(mocks.NewMockCatalogRepository(ctrl), zerolog.Nop())

	payload, err := builder.Build(context.Background(), domain.ProcessTypeProductList, nil, 1)

	require.Error(t, err)
	assert.Nil(t, payload)
}

func TestPayloadBuilder_Build_CatalogError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	catalogRepo := mocks.NewMockCatalogRepository(ctrl)
	builder := NewPayloadBuilder(catalogRepo, zerolog.Nop())

	catalogRepo.EXPECT().GetAllProducts(gomock.Any()).Return(nil, errors.New("connection reset"))

	payload, err := builder.Build(context.Background(), domain.ProcessTypeProductList, testLoadEvent(), 1)

	require.Error(t, err)
	assert.Nil(t, payload)
}
