package projector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/pulse/internal/models"
)

func TestGuideBars_IncludesOthers(t *testing.T) {
	guides := &models.Guides{
		Top: []models.GuideStat{
			{Title: "Kubernetes Basics", Count: 40, Percent: 40, CompletedPassed: 20, InProgress: 15, NotStarted: 5},
			{Title: "Linux Intro", Count: 30, Percent: 30, CompletedPassed: 10, InProgress: 10, NotStarted: 10},
		},
		Others: &models.GuideStat{Count: 30, Percent: 30, CompletedPassed: 5, InProgress: 10, NotStarted: 15},
	}

	bars := GuideBars(guides)
	require.Len(t, bars, 3)
	assert.Equal(t, "Others", bars[2].Title)
	assert.Equal(t, 30, bars[2].Count)
}

func TestGuideBars_WidthsScaleToWidestBar(t *testing.T) {
	guides := &models.Guides{
		Top: []models.GuideStat{
			{Title: "A", Count: 40, CompletedPassed: 40},
			{Title: "B", Count: 20, CompletedPassed: 10, InProgress: 10},
		},
	}

	bars := GuideBars(guides)
	require.Len(t, bars, 2)
	assert.Equal(t, 100.0, bars[0].CompletedWidth)
	assert.Equal(t, 25.0, bars[1].CompletedWidth)
	assert.Equal(t, 25.0, bars[1].InProgressWidth)
}

func TestGuideBars_OthersDominatesScale(t *testing.T) {
	// The width denominator must include Others, or top-guide bars overflow.
	guides := &models.Guides{
		Top:    []models.GuideStat{{Title: "A", Count: 10, CompletedPassed: 10}},
		Others: &models.GuideStat{Count: 50, CompletedPassed: 50},
	}

	bars := GuideBars(guides)
	assert.Equal(t, 20.0, bars[0].CompletedWidth)
	assert.Equal(t, 100.0, bars[1].CompletedWidth)
}

func TestGuideBars_Empty(t *testing.T) {
	bars := GuideBars(&models.Guides{})
	assert.Empty(t, bars)
}

func TestSegmentSlices_OrdinalColors(t *testing.T) {
	segments := &models.Segments{
		Current: []models.SegmentStat{
			{Segment: "Enterprise", Count: 50, Percent: 50},
			{Segment: "Startup", Count: 30, Percent: 30},
			{Segment: "", Count: 20, Percent: 20},
		},
	}

	slices := SegmentSlices(segments, "")
	require.Len(t, slices, 3)

	assert.Equal(t, segmentPalette[0], slices[0].Color)
	assert.Equal(t, segmentPalette[1], slices[1].Color)
	assert.Equal(t, segmentPalette[2], slices[2].Color)
	assert.Equal(t, models.SegmentNone, slices[2].Segment)
}

func TestSegmentSlices_Selected(t *testing.T) {
	segments := &models.Segments{
		Current: []models.SegmentStat{
			{Segment: "Enterprise", Count: 50},
			{Segment: "Startup", Count: 30},
		},
	}

	slices := SegmentSlices(segments, "Startup")
	assert.False(t, slices[0].Selected)
	assert.True(t, slices[1].Selected)
}

func TestSegmentColor_Cycles(t *testing.T) {
	assert.Equal(t, SegmentColor(0), SegmentColor(len(segmentPalette)))
	assert.Equal(t, SegmentColor(1), SegmentColor(len(segmentPalette)+1))
}
