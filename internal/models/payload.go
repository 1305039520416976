// Package models defines the webhook payload contract and derived view-models for Pulse.
package models

import (
	"fmt"
	"math"
)

// RawPayload is the single aggregated response driving the entire dashboard
// for one refresh cycle. It is decoded once at the PayloadSource boundary into
// this typed form; nothing downstream re-parses JSON.
type RawPayload struct {
	Enrollments   *Enrollments   `json:"enrollments"`
	Labs          *Labs          `json:"labs"`
	Documentation *Documentation `json:"documentation"`

	// Timestamp is set by the static-export build of the upstream pipeline.
	Timestamp string `json:"timestamp,omitempty"`
}

// ShapeError reports an expected section or field missing from an otherwise
// successful response. Handlers render it inline in the affected panel.
type ShapeError struct {
	Section string
	Field   string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("payload shape error: %s missing %s", e.Section, e.Field)
}

// ValidateAcademy checks the sections the academy view depends on. Every
// struct the KPI projection dereferences must be present: a partially-shaped
// response degrades the panel, it must not panic the projector.
func (p *RawPayload) ValidateAcademy() error {
	if p.Enrollments == nil {
		return &ShapeError{Section: "enrollments", Field: "enrollments"}
	}
	if p.Enrollments.Window == nil {
		return &ShapeError{Section: "enrollments", Field: "window"}
	}
	if p.Enrollments.Current == nil {
		return &ShapeError{Section: "enrollments", Field: "current"}
	}
	if p.Enrollments.Previous == nil {
		return &ShapeError{Section: "enrollments", Field: "previous"}
	}
	if p.Labs == nil {
		return &ShapeError{Section: "labs", Field: "labs"}
	}
	if p.Labs.Current == nil {
		return &ShapeError{Section: "labs", Field: "current"}
	}
	if p.Labs.Today == nil {
		return &ShapeError{Section: "labs", Field: "today"}
	}
	return nil
}

// ValidateGuides checks the guide breakdown panel's inputs.
func (p *RawPayload) ValidateGuides() error {
	if p.Enrollments == nil || p.Enrollments.Guides == nil {
		return &ShapeError{Section: "enrollments", Field: "guides"}
	}
	return nil
}

// ValidateSegments checks the segment panel's inputs.
func (p *RawPayload) ValidateSegments() error {
	if p.Enrollments == nil || p.Enrollments.Segments == nil {
		return &ShapeError{Section: "enrollments", Field: "segments"}
	}
	return nil
}

// ValidateDocumentation checks the documentation view's inputs.
func (p *RawPayload) ValidateDocumentation() error {
	if p.Documentation == nil {
		return &ShapeError{Section: "documentation", Field: "documentation"}
	}
	return nil
}

// --- Enrollments ---

type Enrollments struct {
	Current  *EnrollmentCounts `json:"current"`
	Previous *EnrollmentCounts `json:"previous"`
	Delta    *EnrollmentDeltas `json:"delta"`
	Guides   *Guides           `json:"guides"`
	Segments *Segments         `json:"segments"`
	Window   *Window           `json:"window"`
	Trend    []EnrollmentTrendPoint `json:"trend,omitempty"`

	// RawData carries one record per enrollment when the upstream query
	// includes it. Used only for client-side segment refiltering.
	RawData []EnrollmentRecord `json:"raw_data,omitempty"`
}

// EnrollmentCounts is the aggregate shape shared by current and previous windows.
type EnrollmentCounts struct {
	TotalEnrollments int `json:"total_enrollments"`
	UniqueUsers      int `json:"unique_users"`
	CompletedPassed  int `json:"completed_passed"`
	CompletedFailed  int `json:"completed_failed"`
	InProgress       int `json:"in_progress"`
	NotStarted       int `json:"not_started"`
}

// EnrollmentDeltas pairs each counted field with its current-vs-previous delta.
type EnrollmentDeltas struct {
	TotalEnrollments *Delta `json:"total_enrollments"`
	UniqueUsers      *Delta `json:"unique_users"`
	CompletedPassed  *Delta `json:"completed_passed"`
	CompletedFailed  *Delta `json:"completed_failed"`
	InProgress       *Delta `json:"in_progress"`
	NotStarted       *Delta `json:"not_started"`
}

// Delta describes the change between a current and previous metric value.
// Percent is nil when the previous value was 0 (undefined ratio).
type Delta struct {
	Abs     float64  `json:"abs"`
	Percent *float64 `json:"percent"`
}

// NewDelta computes a Delta from a current/previous pair with the upstream
// rounding rule: percent = round((current-previous)/previous*100), nil when
// previous is 0.
func NewDelta(current, previous float64) *Delta {
	d := &Delta{Abs: current - previous}
	if previous != 0 {
		p := math.Round((current - previous) / previous * 100)
		d.Percent = &p
	}
	return d
}

type Guides struct {
	Top    []GuideStat `json:"top"`
	Others *GuideStat  `json:"others"`
}

// GuideStat is one guide's enrollment share. The status sub-counts are present
// in newer payloads for stacked rendering and zero otherwise.
type GuideStat struct {
	Title           string `json:"title,omitempty"`
	Count           int    `json:"count"`
	Percent         int    `json:"percent"`
	CompletedPassed int    `json:"completed_passed,omitempty"`
	InProgress      int    `json:"in_progress,omitempty"`
	NotStarted      int    `json:"not_started,omitempty"`
}

type Segments struct {
	Current  []SegmentStat `json:"current"`
	Previous []SegmentStat `json:"previous"`
}

type SegmentStat struct {
	Segment string  `json:"segment"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Window describes the comparison period pair.
type Window struct {
	DaysBack int         `json:"days_back"`
	Current  WindowRange `json:"current"`
	Previous WindowRange `json:"previous"`
}

type WindowRange struct {
	StartISO string `json:"start_iso"`
	EndISO   string `json:"end_iso"`
}

// EnrollmentTrendPoint is one day of enrollment activity, keyed by a
// zero-padded YYYY-MM-DD date string.
type EnrollmentTrendPoint struct {
	Date             string `json:"date"`
	TotalEnrollments int    `json:"total_enrollments"`
	CompletedPassed  int    `json:"completed_passed"`
	CompletedFailed  int    `json:"completed_failed"`
	InProgress       int    `json:"in_progress"`
	NotStarted       int    `json:"not_started"`
}

// Enrollment pass statuses.
const (
	PassStatusNotStarted = "not_started"
	PassStatusInProgress = "in_progress"
	PassStatusPassed     = "passed"
	PassStatusFailed     = "failed"
)

// SegmentNone is the sentinel primary segment for users with no segment assigned.
const SegmentNone = "(none)"

// EnrollmentRecord is one raw user-guide enrollment row. Immutable once received.
type EnrollmentRecord struct {
	UserID         string `json:"user_id"`
	CreatedDate    string `json:"created_date"`
	PassStatus     string `json:"pass_status"`
	Title          string `json:"title"`
	IsCompleted    bool   `json:"is_completed"`
	PrimarySegment string `json:"primary_segment"`
}

// --- Labs ---

type Labs struct {
	Current  *LabCounts        `json:"current"`
	Previous *LabCounts        `json:"previous"`
	Today    *LabCounts        `json:"today"`
	Delta    map[string]*Delta `json:"delta,omitempty"`
	Trend    []LabTrendPoint   `json:"trend,omitempty"`
	Window   *Window           `json:"window"`
}

type LabCounts struct {
	AvgResolveHours     float64 `json:"avg_resolve_hours"`
	AvgResolveSeconds   float64 `json:"avg_resolve_seconds"`
	CreatedLabs         int     `json:"created_labs"`
	FailedChecks        int     `json:"failed_checks"`
	FailedChecksPercent float64 `json:"failed_checks_percent"`
	LabsRunningNow      int     `json:"labs_running_now"`
	PassedChecks        int     `json:"passed_checks"`
	PassedChecksPercent float64 `json:"passed_checks_percent"`
	ResolvedLabs        int     `json:"resolved_labs"`
	TotalAttempts       int     `json:"total_attempts"`
}

// LabTrendPoint is one trend bucket. Hourly points carry Time (RFC3339);
// pre-aggregated daily points carry Date (YYYY-MM-DD) instead.
type LabTrendPoint struct {
	Time              string  `json:"time,omitempty"`
	Date              string  `json:"date,omitempty"`
	LabsRunning       int     `json:"labs_running"`
	CreatedLabs       int     `json:"created_labs"`
	ResolvedLabs      int     `json:"resolved_labs"`
	FailedChecks      int     `json:"failed_checks"`
	PassedChecks      int     `json:"passed_checks"`
	TotalAttempts     int     `json:"total_attempts"`
	AvgResolveSeconds float64 `json:"avg_resolve_seconds,omitempty"`
}

// --- Documentation ---

type Documentation struct {
	Support         *SupportMetrics `json:"support"`
	SupportPrevious *SupportMetrics `json:"support_previous"`
	SupportDelta    *SupportDeltas  `json:"support_delta"`

	AIAgent         *AIAgentMetrics `json:"ai_agent"`
	AIAgentPrevious *AIAgentMetrics `json:"ai_agent_previous"`
	AIAgentDelta    *AIAgentDeltas  `json:"ai_agent_delta"`

	Window          *DocWindow      `json:"window"`
	Trend           []DocTrendPoint `json:"trend,omitempty"`
	EngagementTrend []DocTrendPoint `json:"engagement_trend,omitempty"`
}

type DocWindow struct {
	Month string `json:"month"`
}

// SupportMetrics are the support-side documentation metrics. All values are
// Flex because the upstream aggregation engine emits its approximate-distinct
// counts as fraction strings.
type SupportMetrics struct {
	ActiveUsers          Flex `json:"active_users"`
	TicketsAmount        Flex `json:"tickets_amount"`
	TicketsVolumePercent Flex `json:"tickets_volume_percent"`
	TotalConversations   Flex `json:"total_conversations"`
}

type AIAgentMetrics struct {
	AdoptionRatePercent   Flex `json:"adoption_rate_percent"`
	DeflectionRatePercent Flex `json:"deflection_rate_percent"`
}

// DocDelta mirrors Delta but tolerates the documentation pipeline's encodings;
// Absolute may itself be a fraction string.
type DocDelta struct {
	Absolute Flex `json:"absolute"`
	Percent  Flex `json:"percent"`
}

type SupportDeltas struct {
	ActiveUsers          *DocDelta `json:"active_users"`
	TicketsAmount        *DocDelta `json:"tickets_amount"`
	TicketsVolumePercent *DocDelta `json:"tickets_volume_percent"`
	TotalConversations   *DocDelta `json:"total_conversations"`
}

type AIAgentDeltas struct {
	AdoptionRatePercent   *DocDelta `json:"adoption_rate_percent"`
	DeflectionRatePercent *DocDelta `json:"deflection_rate_percent"`
}

// MalformedValueCount counts values that arrived unparseable (as opposed to
// missing). The decode boundary logs the count so upstream shape drift is
// visible without failing the render.
func (d *Documentation) MalformedValueCount() int {
	n := 0
	count := func(values ...Flex) {
		for _, v := range values {
			if v.Malformed() {
				n++
			}
		}
	}

	for _, m := range []*SupportMetrics{d.Support, d.SupportPrevious} {
		if m != nil {
			count(m.ActiveUsers, m.TicketsAmount, m.TicketsVolumePercent, m.TotalConversations)
		}
	}
	for _, m := range []*AIAgentMetrics{d.AIAgent, d.AIAgentPrevious} {
		if m != nil {
			count(m.AdoptionRatePercent, m.DeflectionRatePercent)
		}
	}
	if sd := d.SupportDelta; sd != nil {
		for _, delta := range []*DocDelta{sd.ActiveUsers, sd.TicketsAmount, sd.TicketsVolumePercent, sd.TotalConversations} {
			if delta != nil {
				count(delta.Absolute, delta.Percent)
			}
		}
	}
	if ad := d.AIAgentDelta; ad != nil {
		for _, delta := range []*DocDelta{ad.AdoptionRatePercent, ad.DeflectionRatePercent} {
			if delta != nil {
				count(delta.Absolute, delta.Percent)
			}
		}
	}
	for _, trend := range [][]DocTrendPoint{d.Trend, d.EngagementTrend} {
		for _, p := range trend {
			count(p.TotalActiveUsers, p.TotalTicketsAmount, p.TotalConversations,
				p.AdoptionRatePercent, p.DeflectionRatePercent, p.TicketsVolumePercent)
		}
	}
	return n
}

// DocTrendPoint is one month of documentation metrics, keyed by a YYYY-MM month
// string. The same shape serves both the totals trend and the engagement trend.
type DocTrendPoint struct {
	Month                 string `json:"month"`
	TotalActiveUsers      Flex   `json:"total_active_users"`
	TotalTicketsAmount    Flex   `json:"total_tickets_amount"`
	TotalConversations    Flex   `json:"total_conversations"`
	AdoptionRatePercent   Flex   `json:"adoption_rate_percent"`
	DeflectionRatePercent Flex   `json:"deflection_rate_percent"`
	TicketsVolumePercent  Flex   `json:"tickets_volume_percent"`
}
