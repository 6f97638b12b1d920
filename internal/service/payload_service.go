package service

import (
	"context"
	"fmt"
	"time"

	"dealer-catalog-sync/internal/core/domain"
	"dealer-catalog-sync/internal/core/ports"

	"github.com/rs/zerolog"
)

// payloadBuilder implements ports.PayloadBuilder.
type payloadBuilder struct {
	catalogRepo ports.CatalogRepository
	log         zerolog.Logger
}

// NewPayloadBuilder creates the catalog payload builder.
func NewPayloadBuilder(catalogRepo ports.CatalogRepository, log zerolog.Logger) ports.PayloadBuilder {
	return &payloadBuilder{
		catalogRepo: catalogRepo,
		log:         log,
	}
}

// Build assembles the catalog payload for the load event. Process types
// without a catalog implementation get the metadata envelope alone: the
// allow-list gates which types run at all, so an unrecognized type here is
// degraded gracefully rather than failed.
func (b *payloadBuilder) Build(ctx context.Context, processType string, event *domain.LoadEvent, webhookTargets int) (*domain.SyncPayload, error) {
	if event == nil {
		return nil, fmt.Errorf("payload build: load event is nil")
	}

	payload := &domain.SyncPayload{
		Metadata: domain.PayloadMetadata{
			ProcessID:      event.ID,
			ProcessType:    processType,
			LoadID:         event.LoadID,
			LoadDate:       event.LoadDate.UTC().Truncate(time.Second).Format(time.RFC3339),
			WebhookTargets: webhookTargets,
		},
	}

	switch processType {
	case domain.ProcessTypeProductList:
		products, err := b.catalogRepo.GetAllProducts(ctx)
		if err != nil {
			return nil, fmt.Errorf("payload build: %w", err)
		}
		payload.Products = products
		payload.Metadata.RecordCount = len(products)

	case domain.ProcessTypeCampaignList:
		campaigns, err := b.catalogRepo.GetAllCampaigns(ctx)
		if err != nil {
			return nil, fmt.Errorf("payload build: %w", err)
		}
		payload.Campaigns = campaigns
		payload.Metadata.RecordCount = len(campaigns)

	default:
		b.log.Warn().
			Str("process_type", processType).
			Msg("no catalog implementation for process type, sending metadata-only payload")
	}

	return payload, nil
}
