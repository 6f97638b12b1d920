package domain

import "time"

// Process types with a catalog payload implementation. Other types are
// accepted when enabled by configuration but produce a metadata-only payload.
const (
	ProcessTypeProductList  = "ProductList"
	ProcessTypeCampaignList = "CampaignList"
)

// Product is one row of the dealer product catalog snapshot.
type Product struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	Family      string    `json:"family"`
	Brand       string    `json:"brand"`
	ListPrice   int64     `json:"list_price"` // smallest currency unit
	UpdatedAt   time.Time `json:"updated_at"`
}

// Campaign is one row of the dealer campaign catalog snapshot.
type Campaign struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// LoadEvent is the upstream load record a sync run operates against. One
// load event exists per (process type, load id) data load; the sync updates
// its synchronized-dealer progress on completion.
type LoadEvent struct {
	ID            int64
	ProcessType   string
	LoadID        string
	LoadDate      time.Time
	TotalDealers  int
	SyncedDealers int
	SyncedPercent float64
}

// SyncPayload is the document delivered to every dealer webhook of a run.
// Exactly one of Products/Campaigns is populated depending on process type;
// both stay empty for process types without a catalog implementation.
type SyncPayload struct {
	Metadata  PayloadMetadata `json:"metadata"`
	Products  []Product       `json:"products,omitempty"`
	Campaigns []Campaign      `json:"campaigns,omitempty"`
}

// PayloadMetadata is the envelope describing the load being synchronized.
type PayloadMetadata struct {
	ProcessID      int64  `json:"process_id"`
	ProcessType    string `json:"process_type"`
	LoadID         string `json:"load_id"`
	LoadDate       string `json:"load_date"` // ISO-8601, seconds precision
	RecordCount    int    `json:"record_count"`
	WebhookTargets int    `json:"webhook_targets"`
}
