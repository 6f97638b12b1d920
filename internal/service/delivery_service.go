package service

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"dealer-catalog-sync/internal/core/domain"
	"dealer-catalog-sync/internal/core/ports"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

const (
	// Request headers sent with every delivery.
	HeaderSignature = "X-Sync-Signature"
	HeaderTimestamp = "X-Sync-Timestamp"

	// Ack response bodies are tiny; anything larger is not an ack.
	maxAckBodySize = 64 << 10
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ackResponse is the acknowledgment body a dealer endpoint may return.
type ackResponse struct {
	AckToken string `json:"ackToken"`
}

// deliveryClient implements ports.DeliveryClient. One POST per webhook URL;
// every outcome short of an invalid argument is classified into the result.
// A per-host circuit breaker short-circuits repeatedly dead endpoints so a
// follow-up run does not burn the full timeout on each of them again.
type deliveryClient struct {
	httpClient HTTPClient
	log        zerolog.Logger

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker
}

// NewDeliveryClient creates a webhook delivery client.
func NewDeliveryClient(httpClient HTTPClient, log zerolog.Logger) ports.DeliveryClient {
	return &deliveryClient{
		httpClient: httpClient,
		log:        log,
		breakers:   make(map[string]*gobreaker.CircuitBreaker),
	}
}

// Deliver POSTs the payload to the dealer endpoint and classifies the outcome.
func (c *deliveryClient) Deliver(ctx context.Context, rawURL, secret string, body []byte) (*domain.DeliveryResult, error) {
	if rawURL == "" {
		return nil, errors.New("deliver: url is empty")
	}
	if len(body) == 0 {
		return nil, errors.New("deliver: body is empty")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("deliver: invalid url %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("deliver: building request: %w", err)
	}

	timestamp := time.Now().Unix()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderSignature, sign(secret, body))
	req.Header.Set(HeaderTimestamp, strconv.FormatInt(timestamp, 10))

	out, err := c.breaker(parsed.Host).Execute(func() (interface{}, error) {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxAckBodySize))
		return &httpOutcome{status: resp.StatusCode, body: respBody}, nil
	})
	if err != nil {
		msg := err.Error()
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			msg = fmt.Sprintf("circuit open for host %s", parsed.Host)
		}
		c.log.Warn().Str("url", rawURL).Str("error", msg).Msg("webhook delivery failed")
		return &domain.DeliveryResult{
			ErrorMsg:        msg,
			ConnectionError: true,
		}, nil
	}

	outcome := out.(*httpOutcome)
	switch {
	case outcome.status >= 200 && outcome.status < 300:
		ack := parseAckToken(outcome.body)
		if ack == "" {
			ack = deriveAckToken(rawURL, body, timestamp)
		}
		c.log.Info().Str("url", rawURL).Int("status", outcome.status).Msg("webhook delivered")
		return &domain.DeliveryResult{
			Success:    true,
			HTTPStatus: outcome.status,
			AckToken:   ack,
		}, nil

	case outcome.status == http.StatusUnauthorized || outcome.status == http.StatusForbidden:
		c.log.Warn().Str("url", rawURL).Int("status", outcome.status).Msg("webhook rejected: auth error")
		return &domain.DeliveryResult{
			HTTPStatus: outcome.status,
			ErrorMsg:   fmt.Sprintf("authentication rejected with HTTP %d", outcome.status),
			AuthError:  true,
		}, nil

	default:
		// Any other non-2xx is a transient failure, retryable on a later run.
		c.log.Warn().Str("url", rawURL).Int("status", outcome.status).Msg("webhook delivery failed: unexpected status")
		return &domain.DeliveryResult{
			HTTPStatus:      outcome.status,
			ErrorMsg:        fmt.Sprintf("unexpected HTTP %d", outcome.status),
			ConnectionError: true,
		}, nil
	}
}

type httpOutcome struct {
	status int
	body   []byte
}

// breaker returns the circuit breaker for a dealer host, creating it on
// first use. Transport failures trip it; HTTP responses of any status count
// as breaker successes since the endpoint is alive.
func (c *deliveryClient) breaker(host string) *gobreaker.CircuitBreaker {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cb, ok := c.breakers[host]; ok {
		return cb
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        host,
		MaxRequests: 1,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})
	c.breakers[host] = cb
	return cb
}

// sign computes the HMAC-SHA256 of the payload with the group's shared
// secret, hex-encoded. The dealer endpoint verifies it against the body.
func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func parseAckToken(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var ack ackResponse
	if err := json.Unmarshal(body, &ack); err != nil {
		return ""
	}
	return ack.AckToken
}

// deriveAckToken produces a deterministic token when the endpoint acked with
// an empty body, so every successful delivery has idempotency evidence.
func deriveAckToken(url string, body []byte, timestamp int64) string {
	h := sha256.New()
	h.Write([]byte(url))
	h.Write(body)
	h.Write([]byte(strconv.FormatInt(timestamp, 10)))
	return hex.EncodeToString(h.Sum(nil))
}
