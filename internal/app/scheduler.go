package app

import (
	"context"
	"time"

	"github.com/bobmcallan/pulse/internal/common"
	"github.com/bobmcallan/pulse/internal/interfaces"
)

// startRefreshScheduler refreshes the payload on the interval from the
// persisted UI state. A DataRefreshInterval of 0 disables the scheduler; it
// exits immediately and is restarted when settings change.
func startRefreshScheduler(ctx context.Context, source interfaces.PayloadSource, settings interfaces.SettingsStore, logger *common.Logger) {
	state, err := settings.LoadUIState(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Refresh scheduler: failed to load UI state, using defaults")
	}
	state = state.Normalize()

	if state.DataRefreshInterval <= 0 {
		logger.Info().Msg("Refresh scheduler: disabled")
		return
	}

	interval := time.Duration(state.DataRefreshInterval) * time.Minute
	logger.Info().Dur("interval", interval).Msg("Refresh scheduler: started")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Refresh scheduler: stopped")
			return
		case <-ticker.C:
			refreshPayload(ctx, source, settings, logger)
		}
	}
}

func refreshPayload(ctx context.Context, source interfaces.PayloadSource, settings interfaces.SettingsStore, logger *common.Logger) {
	start := time.Now()

	// Re-read state each tick so a period change mid-cycle refreshes the
	// window the kiosk is actually showing.
	state, err := settings.LoadUIState(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Payload refresh: failed to load UI state")
		return
	}
	state = state.Normalize()

	if _, err := source.Refresh(ctx, state); err != nil {
		logger.Warn().Err(err).Msg("Payload refresh: fetch failed")
		return
	}

	logger.Info().
		Str("period", state.SelectedPeriod).
		Dur("elapsed", time.Since(start)).
		Msg("Payload refresh: complete")
}
