// Package interfaces defines service contracts for Pulse
package interfaces

import (
	"context"

	"github.com/bobmcallan/pulse/internal/models"
)

// WebhookClient fetches the aggregated dashboard payload from the external
// webhook. Implementations surface timeouts, HTTP errors, and decode failures
// as distinct error kinds; they never retry — retrying is the scheduler's job.
type WebhookClient interface {
	FetchDashboard(ctx context.Context, req models.FetchRequest) (*models.RawPayload, error)
}

// WeatherClient provides the cosmetic weather widget data.
type WeatherClient interface {
	Current(ctx context.Context) (*models.Weather, error)
}
