package app

import (
	"context"
	"os"
	"time"

	"github.com/bobmcallan/pulse/internal/common"
	"github.com/bobmcallan/pulse/internal/interfaces"
)

// warmCache fetches the payload for the persisted UI state on startup so the
// first render is fast.
func warmCache(ctx context.Context, source interfaces.PayloadSource, settings interfaces.SettingsStore, logger *common.Logger) {
	if os.Getenv("PULSE_WARM_CACHE") == "off" {
		logger.Info().Msg("Warm cache: disabled via PULSE_WARM_CACHE=off")
		return
	}

	start := time.Now()

	state, err := settings.LoadUIState(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Warm cache: failed to load UI state, using defaults")
	}
	state = state.Normalize()

	// Get serves from cache when a fresh entry exists, so restarting the
	// kiosk inside the TTL costs nothing.
	if _, err := source.Get(ctx, state); err != nil {
		logger.Warn().Err(err).Msg("Warm cache: fetch failed")
		return
	}

	logger.Info().
		Str("period", state.SelectedPeriod).
		Dur("elapsed", time.Since(start)).
		Msg("Warm cache: complete")
}
