// Package weather provides a wttr.in client for the kiosk header widget.
// Weather is cosmetic: failures are logged and the widget shows a placeholder.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/bobmcallan/pulse/internal/common"
	"github.com/bobmcallan/pulse/internal/models"
)

const (
	DefaultBaseURL = "https://wttr.in"
	DefaultTimeout = 10 * time.Second
)

// Client implements the WeatherClient interface with a small in-memory cache:
// wttr.in rate-limits aggressively and the widget only needs a 30-minute pulse.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger

	mu     sync.Mutex
	cached *models.Weather
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
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

// NewClient creates a new weather client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// wttr.in j1 response, reduced to the fields the widget uses.
type wttrResponse struct {
	CurrentCondition []struct {
		TempC       string `json:"temp_C"`
		WeatherCode string `json:"weatherCode"`
		WeatherDesc []struct {
			Value string `json:"value"`
		} `json:"weatherDesc"`
	} `json:"current_condition"`
	NearestArea []struct {
		AreaName []struct {
			Value string `json:"value"`
		} `json:"areaName"`
	} `json:"nearest_area"`
}

// Current returns the current conditions, served from cache while fresh.
func (c *Client) Current(ctx context.Context) (*models.Weather, error) {
	c.mu.Lock()
	if c.cached != nil && common.IsFresh(c.cached.FetchedAt, common.FreshnessWeather) {
		w := *c.cached
		c.mu.Unlock()
		return &w, nil
	}
	c.mu.Unlock()

	w, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cached = w
	c.mu.Unlock()

	out := *w
	return &out, nil
}

func (c *Client) fetch(ctx context.Context) (*models.Weather, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/?format=j1", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather fetch failed: status %d", resp.StatusCode)
	}

	var body wttrResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("weather decode failed: %w", err)
	}

	if len(body.CurrentCondition) == 0 {
		return nil, fmt.Errorf("weather response missing current_condition")
	}

	cond := body.CurrentCondition[0]
	w := &models.Weather{
		Code:      cond.WeatherCode,
		FetchedAt: time.Now(),
	}
	if t, err := strconv.ParseFloat(cond.TempC, 64); err == nil {
		w.TempC = int(math.Round(t))
	}
	if len(cond.WeatherDesc) > 0 {
		w.Description = cond.WeatherDesc[0].Value
	}
	if len(body.NearestArea) > 0 && len(body.NearestArea[0].AreaName) > 0 {
		w.Location = body.NearestArea[0].AreaName[0].Value
	}

	c.logger.Debug().Str("code", w.Code).Int("temp_c", w.TempC).Msg("Weather updated")

	return w, nil
}
