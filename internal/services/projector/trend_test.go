package projector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/pulse/internal/models"
)

func TestAggregateLabTrendDaily_BucketsHourlyPoints(t *testing.T) {
	trend := []models.LabTrendPoint{
		{Time: "2025-03-01T09:00:00Z", LabsRunning: 5, PassedChecks: 10, FailedChecks: 2, CreatedLabs: 3, ResolvedLabs: 1, TotalAttempts: 12},
		{Time: "2025-03-01T14:00:00Z", LabsRunning: 8, PassedChecks: 6, FailedChecks: 1, CreatedLabs: 2, ResolvedLabs: 4, TotalAttempts: 7},
		{Time: "2025-03-02T10:00:00Z", LabsRunning: 3, PassedChecks: 4, FailedChecks: 0, CreatedLabs: 1, ResolvedLabs: 2, TotalAttempts: 4},
	}

	out := AggregateLabTrendDaily(trend)
	require.Len(t, out, 2)

	day1 := out[0]
	assert.Equal(t, "2025-03-01", day1.Date)
	assert.Equal(t, 16, day1.PassedChecks)
	assert.Equal(t, 3, day1.FailedChecks)
	assert.Equal(t, 5, day1.CreatedLabs)
	assert.Equal(t, 5, day1.ResolvedLabs)
	assert.Equal(t, 19, day1.TotalAttempts)
	// Gauge: keep the last value seen for the day, not a sum.
	assert.Equal(t, 8, day1.LabsRunning)

	assert.Equal(t, "2025-03-02", out[1].Date)
}

func TestAggregateLabTrendDaily_DailyPassThrough(t *testing.T) {
	trend := []models.LabTrendPoint{
		{Date: "2025-03-02", PassedChecks: 4, LabsRunning: 3},
		{Date: "2025-03-01", PassedChecks: 16, LabsRunning: 8},
	}

	out := AggregateLabTrendDaily(trend)
	require.Len(t, out, 2)
	assert.Equal(t, "2025-03-01", out[0].Date)
	assert.Equal(t, 16, out[0].PassedChecks)
	assert.Equal(t, "2025-03-02", out[1].Date)
}

func TestAggregateLabTrendDaily_Idempotent(t *testing.T) {
	trend := []models.LabTrendPoint{
		{Time: "2025-03-01T09:00:00Z", PassedChecks: 10, LabsRunning: 5},
		{Time: "2025-03-01T14:00:00Z", PassedChecks: 6, LabsRunning: 8},
	}

	once := AggregateLabTrendDaily(trend)
	twice := AggregateLabTrendDaily(once)
	assert.Equal(t, once, twice)
}

func TestAggregateLabTrendDaily_BucketsByUTCDate(t *testing.T) {
	// 09:30 in a +10:00 offset is 23:30 UTC the previous day.
	trend := []models.LabTrendPoint{
		{Time: "2025-03-02T09:30:00+10:00", PassedChecks: 1},
		{Time: "2025-03-01T20:00:00Z", PassedChecks: 2},
	}

	out := AggregateLabTrendDaily(trend)
	require.Len(t, out, 1)
	assert.Equal(t, "2025-03-01", out[0].Date)
	assert.Equal(t, 3, out[0].PassedChecks)
}

func TestAggregateLabTrendDaily_SkipsUnparseable(t *testing.T) {
	trend := []models.LabTrendPoint{
		{Time: "garbage", PassedChecks: 99},
		{Time: "2025-03-01T09:00:00Z", PassedChecks: 10},
	}

	out := AggregateLabTrendDaily(trend)
	require.Len(t, out, 1)
	assert.Equal(t, 10, out[0].PassedChecks)
}

func TestAggregateLabTrendDaily_Empty(t *testing.T) {
	assert.Empty(t, AggregateLabTrendDaily(nil))
}
