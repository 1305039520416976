package models

// View-models are recomputed wholesale on every render pass and never mutated
// incrementally. The renderer (kiosk frontend or PNG charts) consumes them
// as-is.

// Dashboard is the full projection for one render pass.
type Dashboard struct {
	Academy       *AcademyView       `json:"academy,omitempty"`
	Documentation *DocumentationView `json:"documentation,omitempty"`
	UpdatedAt     string             `json:"updated_at,omitempty"`
}

// AcademyView carries every academy panel. Each panel holds either data or an
// inline error string so one malformed section cannot blank the whole view.
type AcademyView struct {
	KPIs     []KPICard `json:"kpis,omitempty"`
	KPIError string    `json:"kpi_error,omitempty"`

	Guides      []GuideBar `json:"guides,omitempty"`
	GuidesError string     `json:"guides_error,omitempty"`

	Segments      []SegmentSlice `json:"segments,omitempty"`
	SegmentsError string         `json:"segments_error,omitempty"`

	EnrollmentTrend []EnrollmentTrendPoint `json:"enrollment_trend,omitempty"`
	LabsTrend       []LabTrendPoint        `json:"labs_trend,omitempty"`

	SelectedSegment string `json:"selected_segment,omitempty"`
	DaysBack        int    `json:"days_back,omitempty"`
}

// DocumentationView carries the documentation panels.
type DocumentationView struct {
	PeriodTitle  string    `json:"period_title"`
	Metrics      []KPICard `json:"metrics,omitempty"`
	MetricsError string    `json:"metrics_error,omitempty"`

	Trend           []DocTotalsPoint     `json:"trend,omitempty"`
	EngagementTrend []DocEngagementPoint `json:"engagement_trend,omitempty"`
}

// KPICard is one dashboard tile. Delta is nil when the metric has no
// meaningful previous-period comparison; renderers draw a spacer, not a zero.
type KPICard struct {
	Label         string    `json:"label"`
	Sublabel      string    `json:"sublabel,omitempty"`
	Value         string    `json:"value"`
	Suffix        string    `json:"suffix,omitempty"`
	PreviousValue string    `json:"previous_value,omitempty"`
	Delta         *KPIDelta `json:"delta,omitempty"`
	Info          *KPIInfo  `json:"info,omitempty"`
}

// KPIDelta is a rendered delta badge. Positive reports whether the change
// should be colored as an improvement, which already accounts for
// inverse-polarity metrics (ticket volume improves when it drops).
type KPIDelta struct {
	Abs      float64  `json:"abs"`
	Percent  *float64 `json:"percent,omitempty"`
	Display  string   `json:"display"`
	Positive bool     `json:"positive"`
}

// KPIInfo is the secondary info box some cards carry instead of a delta
// (e.g. the windowed average under today's solve time).
type KPIInfo struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// GuideBar is one row of the top-guides breakdown. Widths are percentages of
// the widest bar (count / max count across top ∪ others), per status for
// stacked rendering.
type GuideBar struct {
	Title           string  `json:"title"`
	Count           int     `json:"count"`
	Percent         int     `json:"percent"`
	CompletedPassed int     `json:"completed_passed"`
	InProgress      int     `json:"in_progress"`
	NotStarted      int     `json:"not_started"`
	CompletedWidth  float64 `json:"completed_width"`
	InProgressWidth float64 `json:"in_progress_width"`
	NotStartedWidth float64 `json:"not_started_width"`
}

// SegmentSlice is one legend/pie entry. Color is assigned by ordinal position
// in the segments array, cycling a fixed palette.
type SegmentSlice struct {
	Segment  string  `json:"segment"`
	Count    int     `json:"count"`
	Percent  float64 `json:"percent"`
	Color    string  `json:"color"`
	Selected bool    `json:"selected"`
}

// DocTotalsPoint is one month of the documentation totals trend, resolved to
// plain numbers for charting (unavailable values chart as 0, matching the
// original renderer).
type DocTotalsPoint struct {
	Month              string  `json:"month"`
	TotalActiveUsers   float64 `json:"total_active_users"`
	TotalTicketsAmount float64 `json:"total_tickets_amount"`
	TotalConversations float64 `json:"total_conversations"`
}

// DocEngagementPoint is one month of the documentation rates trend.
type DocEngagementPoint struct {
	Month          string  `json:"month"`
	AdoptionRate   float64 `json:"adoption_rate"`
	DeflectionRate float64 `json:"deflection_rate"`
	TicketsVolume  float64 `json:"tickets_volume"`
}
