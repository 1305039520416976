// Package webhook provides a client for the metrics webhook that serves the
// pre-aggregated dashboard payload.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/bobmcallan/pulse/internal/common"
	"github.com/bobmcallan/pulse/internal/models"
)

const (
	DefaultTimeout   = 300 * time.Second
	DefaultRateLimit = 2 // requests per second
)

// ErrTimeout is returned when the webhook does not respond within the
// configured timeout. Callers surface it with distinct banner text.
var ErrTimeout = errors.New("webhook request timed out")

// APIError represents a non-2xx webhook response.
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("webhook error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// Client implements the WebhookClient interface
type Client struct {
	url        string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		if requestsPerSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
		}
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient creates a new webhook client
func NewClient(url string, opts ...ClientOption) *Client {
	c := &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// FetchDashboard POSTs the fetch parameters and decodes the payload response.
// The request body is sent as text/plain — the webhook's CORS policy rejects
// preflighted content types, and the contract predates this client.
func (c *Client) FetchDashboard(ctx context.Context, req models.FetchRequest) (*models.RawPayload, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "text/plain")
	httpReq.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Int("days_back", req.DaysBack).
		Str("month_start", req.MonthStart).
		Msg("Webhook request")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w after %s", ErrTimeout, time.Since(start).Round(time.Second))
		}
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(msg),
			Endpoint:   c.url,
		}
	}

	var payload models.RawPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if payload.Documentation != nil {
		if n := payload.Documentation.MalformedValueCount(); n > 0 {
			c.logger.Warn().
				Int("count", n).
				Msg("Documentation payload carries unparseable values, rendering as N/A")
		}
	}

	c.logger.Debug().
		Dur("elapsed", time.Since(start)).
		Msg("Webhook response decoded")

	return &payload, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}
