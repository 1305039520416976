package projector

import (
	"math"
	"sort"

	"github.com/bobmcallan/pulse/internal/models"
)

const topGuideLimit = 6

// FilterBySegment recomputes the enrollment aggregates, guide breakdown, and
// daily trend entirely from the raw per-enrollment records matching the
// segment, bypassing the server-provided aggregates. Previous-window counts,
// deltas, segments, and window are returned unchanged; the segment panel stays
// unfiltered by design.
//
// Returns the input untouched when no segment is selected or no raw records
// are available.
func FilterBySegment(enr *models.Enrollments, segment string) *models.Enrollments {
	if segment == "" || len(enr.RawData) == 0 {
		return enr
	}

	filtered := make([]models.EnrollmentRecord, 0, len(enr.RawData))
	for _, rec := range enr.RawData {
		if rec.PrimarySegment == segment {
			filtered = append(filtered, rec)
		}
	}

	out := *enr
	out.Current = countRecords(filtered)
	out.Guides = guidesFromRecords(filtered)
	out.Trend = trendFromRecords(filtered)
	return &out
}

// countRecords computes the aggregate counts in a single pass.
func countRecords(records []models.EnrollmentRecord) *models.EnrollmentCounts {
	counts := &models.EnrollmentCounts{
		TotalEnrollments: len(records),
	}

	users := make(map[string]struct{}, len(records))
	for _, rec := range records {
		users[rec.UserID] = struct{}{}
		switch {
		case rec.IsCompleted && rec.PassStatus == models.PassStatusPassed:
			counts.CompletedPassed++
		case rec.IsCompleted && rec.PassStatus == models.PassStatusFailed:
			counts.CompletedFailed++
		}
		switch rec.PassStatus {
		case models.PassStatusInProgress:
			counts.InProgress++
		case models.PassStatusNotStarted:
			counts.NotStarted++
		}
	}
	counts.UniqueUsers = len(users)
	return counts
}

// guidesFromRecords rebuilds the top-6/Others breakdown from the filtered
// records. Percentages are integers relative to the filtered total; an empty
// filter yields 0%, never NaN.
func guidesFromRecords(records []models.EnrollmentRecord) *models.Guides {
	total := len(records)

	byTitle := make(map[string]int)
	for _, rec := range records {
		byTitle[rec.Title]++
	}

	stats := make([]models.GuideStat, 0, len(byTitle))
	for title, count := range byTitle {
		stats = append(stats, models.GuideStat{
			Title:   title,
			Count:   count,
			Percent: roundPercent(count, total),
		})
	}
	// Descending by count; ties break by title so reprojection is stable.
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Title < stats[j].Title
	})

	top := stats
	if len(top) > topGuideLimit {
		top = stats[:topGuideLimit]
	}

	othersCount := 0
	for _, g := range stats[len(top):] {
		othersCount += g.Count
	}

	return &models.Guides{
		Top: top,
		Others: &models.GuideStat{
			Count:   othersCount,
			Percent: roundPercent(othersCount, total),
		},
	}
}

// trendFromRecords groups the filtered records by created date and emits a
// date-ascending daily trend.
func trendFromRecords(records []models.EnrollmentRecord) []models.EnrollmentTrendPoint {
	byDate := make(map[string]*models.EnrollmentTrendPoint)
	for _, rec := range records {
		point, ok := byDate[rec.CreatedDate]
		if !ok {
			point = &models.EnrollmentTrendPoint{Date: rec.CreatedDate}
			byDate[rec.CreatedDate] = point
		}
		point.TotalEnrollments++
		if rec.IsCompleted && rec.PassStatus == models.PassStatusPassed {
			point.CompletedPassed++
		}
		if rec.IsCompleted && rec.PassStatus == models.PassStatusFailed {
			point.CompletedFailed++
		}
		if rec.PassStatus == models.PassStatusInProgress {
			point.InProgress++
		}
		if rec.PassStatus == models.PassStatusNotStarted {
			point.NotStarted++
		}
	}

	trend := make([]models.EnrollmentTrendPoint, 0, len(byDate))
	for _, point := range byDate {
		trend = append(trend, *point)
	}
	// Zero-padded YYYY-MM-DD keys sort correctly as strings.
	sort.Slice(trend, func(i, j int) bool { return trend[i].Date < trend[j].Date })
	return trend
}

func roundPercent(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) * 100 / float64(total)))
}
