package common

import "time"

// Freshness TTLs for cached data
const (
	FreshnessPayload = 60 * time.Minute // aggregated dashboard payload
	FreshnessWeather = 30 * time.Minute // wttr.in widget data
)

// IsFresh returns true if the given timestamp is within the TTL
func IsFresh(updated time.Time, ttl time.Duration) bool {
	if updated.IsZero() {
		return false
	}
	return time.Since(updated) < ttl
}
