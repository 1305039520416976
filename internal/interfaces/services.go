package interfaces

import (
	"context"
	"time"

	"github.com/bobmcallan/pulse/internal/models"
)

// PayloadSource serves the raw payload for a UI state, from cache when fresh.
type PayloadSource interface {
	// Get returns the payload for the state's fetch parameters, fetching from
	// the webhook on a cache miss or expired entry.
	Get(ctx context.Context, state models.UIState) (*models.RawPayload, error)

	// Refresh bypasses the cache and fetches, storing the result.
	Refresh(ctx context.Context, state models.UIState) (*models.RawPayload, error)

	// Invalidate drops the cache entry for the state's fetch parameters.
	Invalidate(ctx context.Context, state models.UIState) error

	// LastFetched returns when the currently served payload was fetched.
	LastFetched() time.Time
}

// DashboardService projects the current payload into view-models.
type DashboardService interface {
	Dashboard(ctx context.Context, state models.UIState) (*models.Dashboard, error)
	Academy(ctx context.Context, state models.UIState) (*models.AcademyView, error)
	Documentation(ctx context.Context, state models.UIState) (*models.DocumentationView, error)
}
