package projector

import (
	"sort"
	"time"

	"github.com/bobmcallan/pulse/internal/models"
)

// AggregateLabTrendDaily normalizes a lab trend to one point per UTC calendar
// day. Points that already carry a date pass through untouched, so the
// function is idempotent. Hourly points are bucketed by the date of their
// timestamp: check and lab counts sum across the bucket, while LabsRunning is
// a point-in-time gauge and keeps the last value seen for the day. Points with
// an unparseable timestamp are skipped.
func AggregateLabTrendDaily(trend []models.LabTrendPoint) []models.LabTrendPoint {
	if len(trend) == 0 {
		return trend
	}

	daily := make(map[string]*models.LabTrendPoint)
	order := make([]string, 0, len(trend))

	for _, point := range trend {
		date := point.Date
		if date == "" {
			ts, err := time.Parse(time.RFC3339, point.Time)
			if err != nil {
				continue
			}
			date = ts.UTC().Format("2006-01-02")
		}

		bucket, ok := daily[date]
		if !ok {
			bucket = &models.LabTrendPoint{Date: date}
			daily[date] = bucket
			order = append(order, date)
		}
		bucket.CreatedLabs += point.CreatedLabs
		bucket.ResolvedLabs += point.ResolvedLabs
		bucket.FailedChecks += point.FailedChecks
		bucket.PassedChecks += point.PassedChecks
		bucket.TotalAttempts += point.TotalAttempts
		bucket.LabsRunning = point.LabsRunning
	}

	sort.Strings(order)
	out := make([]models.LabTrendPoint, 0, len(order))
	for _, date := range order {
		out = append(out, *daily[date])
	}
	return out
}
