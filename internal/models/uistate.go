package models

import "time"

// View identifiers.
const (
	ViewAcademy       = "academy"
	ViewDocumentation = "documentation"
)

// Documentation period selectors.
const (
	DocPeriodMTD  = "mtd"  // month to date
	DocPeriodPrev = "prev" // previous full month
)

// UIState is the durable, user-mutated dashboard state. It is immutable in
// use: handlers build a modified copy and persist it, then reproject. It has
// no server-side counterpart upstream.
type UIState struct {
	CurrentView     string `json:"current_view"`
	SelectedPeriod  string `json:"selected_period"` // 7 | 30 | Q | MTD | YTD
	DocPeriod       string `json:"doc_period"`      // mtd | prev
	SelectedSegment string `json:"selected_segment"`

	RotationInterval    int  `json:"rotation_interval"`     // seconds, 0 disables
	DataRefreshInterval int  `json:"data_refresh_interval"` // minutes, 0 disables
	ShowWeather         bool `json:"show_weather"`
	ShowClock           bool `json:"show_clock"`

	// TrendFilters maps chart ID → series label → hidden.
	TrendFilters map[string]map[string]bool `json:"trend_filters,omitempty"`
}

// DefaultUIState returns the state a fresh kiosk starts with.
func DefaultUIState() UIState {
	return UIState{
		CurrentView:         ViewAcademy,
		SelectedPeriod:      "7",
		DocPeriod:           DocPeriodMTD,
		DataRefreshInterval: 60,
		ShowWeather:         true,
		ShowClock:           true,
	}
}

// Normalize fills invalid or missing fields with defaults.
func (s UIState) Normalize() UIState {
	switch s.CurrentView {
	case ViewAcademy, ViewDocumentation:
	default:
		s.CurrentView = ViewAcademy
	}
	switch s.SelectedPeriod {
	case "7", "30", "Q", "MTD", "YTD":
	default:
		s.SelectedPeriod = "7"
	}
	switch s.DocPeriod {
	case DocPeriodMTD, DocPeriodPrev:
	default:
		s.DocPeriod = DocPeriodMTD
	}
	if s.DataRefreshInterval < 0 {
		s.DataRefreshInterval = 0
	}
	if s.RotationInterval < 0 {
		s.RotationInterval = 0
	}
	return s
}

// DaysBack resolves the selected period to a day count at the given time.
// MTD and YTD are calendar-relative; MTD returns at least 1.
func (s UIState) DaysBack(now time.Time) int {
	switch s.SelectedPeriod {
	case "7":
		return 7
	case "30":
		return 30
	case "Q":
		return 90
	case "MTD":
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		days := int(now.Sub(start).Hours()/24) + 1
		if days < 1 {
			days = 1
		}
		return days
	case "YTD":
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		days := int(now.Sub(start).Hours()/24) + 1
		if days < 1 {
			days = 1
		}
		return days
	}
	return 7
}

// MonthStart resolves the documentation period to the month_start query
// parameter (first of the current or previous month, UTC, YYYY-MM-DD).
func (s UIState) MonthStart(now time.Time) string {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if s.DocPeriod == DocPeriodPrev {
		start = start.AddDate(0, -1, 0)
	}
	return start.Format("2006-01-02")
}

// WithSegmentToggled returns a copy with the segment filter toggled: selecting
// the active segment again clears the filter (idempotent toggle, not a stack).
func (s UIState) WithSegmentToggled(segment string) UIState {
	if s.SelectedSegment == segment {
		s.SelectedSegment = ""
	} else {
		s.SelectedSegment = segment
	}
	return s
}
