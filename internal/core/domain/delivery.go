package domain

// DeliveryResult is the classified outcome of one webhook delivery attempt.
// It is produced per attempt and consumed immediately; never persisted as-is.
type DeliveryResult struct {
	Success    bool
	HTTPStatus int
	AckToken   string // set only on success
	ErrorMsg   string

	// Mutually exclusive failure classifications.
	AuthError       bool // HTTP 401/403 from the dealer endpoint
	ConnectionError bool // timeout, transport failure, or unexpected status
}
