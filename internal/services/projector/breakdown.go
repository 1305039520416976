package projector

import (
	"github.com/bobmcallan/pulse/internal/models"
)

// GuideBars builds the top-guides breakdown rows, with the Others bucket
// appended as a final row. Top guides arrive pre-sorted by descending count
// and are not re-sorted here. Bar widths are scaled against the widest bar
// across top ∪ others — the denominator must include Others or relative
// lengths drift.
func GuideBars(guides *models.Guides) []models.GuideBar {
	all := make([]models.GuideStat, 0, len(guides.Top)+1)
	all = append(all, guides.Top...)
	if guides.Others != nil {
		others := *guides.Others
		if others.Title == "" {
			others.Title = "Others"
		}
		all = append(all, others)
	}

	maxCount := 0
	for _, g := range all {
		if g.Count > maxCount {
			maxCount = g.Count
		}
	}

	bars := make([]models.GuideBar, 0, len(all))
	for _, g := range all {
		bar := models.GuideBar{
			Title:           g.Title,
			Count:           g.Count,
			Percent:         g.Percent,
			CompletedPassed: g.CompletedPassed,
			InProgress:      g.InProgress,
			NotStarted:      g.NotStarted,
		}
		if maxCount > 0 {
			bar.CompletedWidth = float64(g.CompletedPassed) / float64(maxCount) * 100
			bar.InProgressWidth = float64(g.InProgress) / float64(maxCount) * 100
			bar.NotStartedWidth = float64(g.NotStarted) / float64(maxCount) * 100
		}
		bars = append(bars, bar)
	}
	return bars
}

// SegmentSlices builds the legend/pie entries from the unfiltered current
// segments. Colors follow ordinal position; the active filter is marked so
// the legend can highlight it. The segment panel always shows unfiltered
// data — filtering affects the enrollment panels, never this one.
func SegmentSlices(segments *models.Segments, selectedSegment string) []models.SegmentSlice {
	slices := make([]models.SegmentSlice, 0, len(segments.Current))
	for i, seg := range segments.Current {
		name := seg.Segment
		if name == "" {
			name = models.SegmentNone
		}
		slices = append(slices, models.SegmentSlice{
			Segment:  name,
			Count:    seg.Count,
			Percent:  seg.Percent,
			Color:    SegmentColor(i),
			Selected: selectedSegment != "" && name == selectedSegment,
		})
	}
	return slices
}
