package projector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/pulse/internal/models"
)

func rawEnrollments() *models.Enrollments {
	return &models.Enrollments{
		Current:  &models.EnrollmentCounts{TotalEnrollments: 6, UniqueUsers: 4},
		Previous: &models.EnrollmentCounts{TotalEnrollments: 5},
		Delta:    &models.EnrollmentDeltas{TotalEnrollments: models.NewDelta(6, 5)},
		Segments: &models.Segments{
			Current: []models.SegmentStat{
				{Segment: "Enterprise", Count: 4},
				{Segment: "Startup", Count: 2},
			},
		},
		Window: &models.Window{DaysBack: 7},
		RawData: []models.EnrollmentRecord{
			{UserID: "u1", CreatedDate: "2025-03-02", PassStatus: models.PassStatusPassed, Title: "Kubernetes Basics", IsCompleted: true, PrimarySegment: "Enterprise"},
			{UserID: "u1", CreatedDate: "2025-03-01", PassStatus: models.PassStatusInProgress, Title: "Linux Intro", PrimarySegment: "Enterprise"},
			{UserID: "u2", CreatedDate: "2025-03-01", PassStatus: models.PassStatusNotStarted, Title: "Linux Intro", PrimarySegment: "Enterprise"},
			{UserID: "u3", CreatedDate: "2025-03-02", PassStatus: models.PassStatusFailed, Title: "Kubernetes Basics", IsCompleted: true, PrimarySegment: "Enterprise"},
			{UserID: "u4", CreatedDate: "2025-03-01", PassStatus: models.PassStatusPassed, Title: "Docker Deep Dive", IsCompleted: true, PrimarySegment: "Startup"},
			{UserID: "u4", CreatedDate: "2025-03-03", PassStatus: models.PassStatusInProgress, Title: "Kubernetes Basics", PrimarySegment: "Startup"},
		},
	}
}

func TestFilterBySegment_NoSegmentPassThrough(t *testing.T) {
	enr := rawEnrollments()
	assert.Same(t, enr, FilterBySegment(enr, ""))
}

func TestFilterBySegment_NoRawDataPassThrough(t *testing.T) {
	enr := rawEnrollments()
	enr.RawData = nil
	assert.Same(t, enr, FilterBySegment(enr, "Enterprise"))
}

func TestFilterBySegment_RecomputesCounts(t *testing.T) {
	out := FilterBySegment(rawEnrollments(), "Enterprise")

	require.NotNil(t, out.Current)
	assert.Equal(t, 4, out.Current.TotalEnrollments)
	assert.Equal(t, 3, out.Current.UniqueUsers, "u1 enrolled twice, counted once")
	assert.Equal(t, 1, out.Current.CompletedPassed)
	assert.Equal(t, 1, out.Current.CompletedFailed)
	assert.Equal(t, 1, out.Current.InProgress)
	assert.Equal(t, 1, out.Current.NotStarted)
}

func TestFilterBySegment_KeepsUnfilteredComparisons(t *testing.T) {
	enr := rawEnrollments()
	out := FilterBySegment(enr, "Enterprise")

	// Previous-window counts, deltas, and segments stay unfiltered.
	assert.Same(t, enr.Previous, out.Previous)
	assert.Same(t, enr.Delta, out.Delta)
	assert.Same(t, enr.Segments, out.Segments)
	assert.Same(t, enr.Window, out.Window)

	// And the input itself is untouched.
	assert.Equal(t, 6, enr.Current.TotalEnrollments)
}

func TestFilterBySegment_GuidesClosure(t *testing.T) {
	out := FilterBySegment(rawEnrollments(), "Enterprise")

	require.NotNil(t, out.Guides)
	total := 0
	for _, g := range out.Guides.Top {
		total += g.Count
	}
	total += out.Guides.Others.Count
	assert.Equal(t, out.Current.TotalEnrollments, total, "guide counts sum to the filtered total")

	// Sorted descending by count, ties broken by title.
	require.Len(t, out.Guides.Top, 2)
	assert.Equal(t, "Kubernetes Basics", out.Guides.Top[0].Title)
	assert.Equal(t, 2, out.Guides.Top[0].Count)
	assert.Equal(t, 50, out.Guides.Top[0].Percent)
}

func TestFilterBySegment_TopSixOthersOverflow(t *testing.T) {
	enr := rawEnrollments()
	enr.RawData = nil
	for i := 0; i < 8; i++ {
		title := string(rune('A' + i))
		// Descending counts: guide A appears 8 times, guide H once.
		for j := 0; j < 8-i; j++ {
			enr.RawData = append(enr.RawData, models.EnrollmentRecord{
				UserID:         "u1",
				CreatedDate:    "2025-03-01",
				PassStatus:     models.PassStatusInProgress,
				Title:          title,
				PrimarySegment: "Enterprise",
			})
		}
	}

	out := FilterBySegment(enr, "Enterprise")
	require.Len(t, out.Guides.Top, 6)
	// Guides G (2) and H (1) spill into Others.
	assert.Equal(t, 3, out.Guides.Others.Count)
}

// Guide percentages are rounded independently, so the total may drift from
// 100 by a point, never more.
func TestFilterBySegment_PercentClosure(t *testing.T) {
	percentSum := func(g *models.Guides) int {
		sum := 0
		for _, stat := range g.Top {
			sum += stat.Percent
		}
		return sum + g.Others.Percent
	}

	// Three-way even split: 33+33+33 = 99.
	enr := rawEnrollments()
	enr.RawData = nil
	for _, title := range []string{"A", "B", "C"} {
		enr.RawData = append(enr.RawData, models.EnrollmentRecord{
			UserID:         "u1",
			CreatedDate:    "2025-03-01",
			PassStatus:     models.PassStatusInProgress,
			Title:          title,
			PrimarySegment: "Enterprise",
		})
	}
	out := FilterBySegment(enr, "Enterprise")
	assert.InDelta(t, 100, percentSum(out.Guides), 1)

	// Eight guides with descending counts, two of them spilling into Others.
	enr = rawEnrollments()
	enr.RawData = nil
	for i := 0; i < 8; i++ {
		title := string(rune('A' + i))
		for j := 0; j < 8-i; j++ {
			enr.RawData = append(enr.RawData, models.EnrollmentRecord{
				UserID:         "u1",
				CreatedDate:    "2025-03-01",
				PassStatus:     models.PassStatusInProgress,
				Title:          title,
				PrimarySegment: "Enterprise",
			})
		}
	}
	out = FilterBySegment(enr, "Enterprise")
	assert.InDelta(t, 100, percentSum(out.Guides), 1)
}

func TestFilterBySegment_DailyTrend(t *testing.T) {
	out := FilterBySegment(rawEnrollments(), "Enterprise")

	require.Len(t, out.Trend, 2)
	assert.Equal(t, "2025-03-01", out.Trend[0].Date)
	assert.Equal(t, 2, out.Trend[0].TotalEnrollments)
	assert.Equal(t, "2025-03-02", out.Trend[1].Date)
	assert.Equal(t, 2, out.Trend[1].TotalEnrollments)
	assert.Equal(t, 1, out.Trend[1].CompletedPassed)
	assert.Equal(t, 1, out.Trend[1].CompletedFailed)
}

func TestFilterBySegment_EmptyResult(t *testing.T) {
	out := FilterBySegment(rawEnrollments(), "Nonexistent")

	assert.Equal(t, 0, out.Current.TotalEnrollments)
	assert.Equal(t, 0, out.Guides.Others.Percent, "zero total must not divide by zero")
	assert.Empty(t, out.Trend)
}

func TestFilterBySegment_Deterministic(t *testing.T) {
	a := FilterBySegment(rawEnrollments(), "Enterprise")
	b := FilterBySegment(rawEnrollments(), "Enterprise")
	assert.Equal(t, a.Guides, b.Guides)
	assert.Equal(t, a.Trend, b.Trend)
}
