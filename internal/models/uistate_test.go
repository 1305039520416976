package models

import (
	"testing"
	"time"
)

func TestUIState_DaysBack(t *testing.T) {
	// Mid-March, so MTD and YTD are unambiguous.
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		period string
		want   int
	}{
		{"7", 7},
		{"30", 30},
		{"Q", 90},
		{"MTD", 15},
		{"YTD", 74},
		{"bogus", 7},
	}

	for _, tt := range tests {
		s := UIState{SelectedPeriod: tt.period}
		if got := s.DaysBack(now); got != tt.want {
			t.Errorf("DaysBack(%q) = %d, want %d", tt.period, got, tt.want)
		}
	}
}

func TestUIState_DaysBack_FirstOfMonth(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 30, 0, 0, time.UTC)
	s := UIState{SelectedPeriod: "MTD"}
	if got := s.DaysBack(now); got != 1 {
		t.Errorf("MTD on the 1st = %d, want 1", got)
	}
}

func TestUIState_MonthStart(t *testing.T) {
	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

	mtd := UIState{DocPeriod: DocPeriodMTD}
	if got := mtd.MonthStart(now); got != "2025-03-01" {
		t.Errorf("MonthStart(mtd) = %q, want 2025-03-01", got)
	}

	prev := UIState{DocPeriod: DocPeriodPrev}
	if got := prev.MonthStart(now); got != "2025-02-01" {
		t.Errorf("MonthStart(prev) = %q, want 2025-02-01", got)
	}
}

func TestUIState_MonthStart_JanuaryPrev(t *testing.T) {
	now := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	s := UIState{DocPeriod: DocPeriodPrev}
	if got := s.MonthStart(now); got != "2024-12-01" {
		t.Errorf("MonthStart(prev) in January = %q, want 2024-12-01", got)
	}
}

func TestUIState_Normalize(t *testing.T) {
	s := UIState{
		CurrentView:         "bogus",
		SelectedPeriod:      "365",
		DocPeriod:           "last-year",
		RotationInterval:    -5,
		DataRefreshInterval: -1,
	}
	s = s.Normalize()

	if s.CurrentView != ViewAcademy {
		t.Errorf("CurrentView = %q, want %q", s.CurrentView, ViewAcademy)
	}
	if s.SelectedPeriod != "7" {
		t.Errorf("SelectedPeriod = %q, want 7", s.SelectedPeriod)
	}
	if s.DocPeriod != DocPeriodMTD {
		t.Errorf("DocPeriod = %q, want %q", s.DocPeriod, DocPeriodMTD)
	}
	if s.RotationInterval != 0 || s.DataRefreshInterval != 0 {
		t.Errorf("negative intervals not clamped: %d, %d", s.RotationInterval, s.DataRefreshInterval)
	}
}

func TestUIState_WithSegmentToggled(t *testing.T) {
	s := UIState{}

	s = s.WithSegmentToggled("Enterprise")
	if s.SelectedSegment != "Enterprise" {
		t.Fatalf("SelectedSegment = %q, want Enterprise", s.SelectedSegment)
	}

	// Selecting a different segment replaces, not stacks.
	s = s.WithSegmentToggled("Startup")
	if s.SelectedSegment != "Startup" {
		t.Fatalf("SelectedSegment = %q, want Startup", s.SelectedSegment)
	}

	// Re-selecting the active segment clears the filter.
	s = s.WithSegmentToggled("Startup")
	if s.SelectedSegment != "" {
		t.Fatalf("SelectedSegment = %q, want empty", s.SelectedSegment)
	}
}
