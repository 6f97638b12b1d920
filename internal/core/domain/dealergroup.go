package domain

import "time"

// DeliveryStatus is the per-webhook-URL delivery state carried over from the
// upstream dealer snapshot. The literals match the snapshot table values.
type DeliveryStatus string

const (
	DeliveryStatusDelivered DeliveryStatus = "EXITOSO"
	DeliveryStatusFailed    DeliveryStatus = "FALLIDO"
)

// DealerWebhookGroup is the set of dealers sharing one webhook URL for a
// given load event. Delivery is per URL: one HTTP call serves every dealer
// in the group, and their snapshot rows are updated together.
type DealerWebhookGroup struct {
	WebhookURL  string
	Secret      string
	LoadEventID int64
	DealerIDs   []string

	// Status is nil while delivery is pending.
	Status        *DeliveryStatus
	RetryCount    int
	LastAttemptAt *time.Time
	LastError     *string
	AckToken      *string
}

// IsPending returns true if the group has not been delivered successfully.
func (g *DealerWebhookGroup) IsPending() bool {
	return g.Status == nil || *g.Status != DeliveryStatusDelivered
}
