package projector

import (
	"fmt"
	"strconv"

	"github.com/bobmcallan/pulse/internal/models"
)

// AcademyKPIs builds the fixed ordered list of 8 academy cards. Labs cards are
// point-in-time or today-scoped gauges and carry no delta; they render a
// spacer, not a zero badge.
func AcademyKPIs(enr *models.Enrollments, labs *models.Labs) []models.KPICard {
	window := enr.Window
	cur := enr.Current
	prev := enr.Previous
	today := labs.Today

	sublabel := fmt.Sprintf("Last %d days", window.DaysBack)

	cards := []models.KPICard{
		countCard("Total Enrollments", sublabel, cur.TotalEnrollments, prev.TotalEnrollments, enrollmentDelta(enr, func(d *models.EnrollmentDeltas) *models.Delta { return d.TotalEnrollments })),
		countCard("Unique Users", sublabel, cur.UniqueUsers, prev.UniqueUsers, enrollmentDelta(enr, func(d *models.EnrollmentDeltas) *models.Delta { return d.UniqueUsers })),
		countCard("Completed Passed", sublabel, cur.CompletedPassed, prev.CompletedPassed, enrollmentDelta(enr, func(d *models.EnrollmentDeltas) *models.Delta { return d.CompletedPassed })),
		countCard("In Progress", sublabel, cur.InProgress, prev.InProgress, enrollmentDelta(enr, func(d *models.EnrollmentDeltas) *models.Delta { return d.InProgress })),
		{
			Label:    "Labs Running Now",
			Sublabel: "Current",
			Value:    strconv.Itoa(today.LabsRunningNow),
		},
		{
			Label:    "Today's Labs",
			Sublabel: fmt.Sprintf("Created: %d | Resolved: %d", today.CreatedLabs, today.ResolvedLabs),
			Value:    strconv.Itoa(today.CreatedLabs + today.ResolvedLabs),
		},
		{
			Label:    "Total Attempts",
			Sublabel: fmt.Sprintf("Today - Passed: %.0f%% | Failed: %.0f%%", today.PassedChecksPercent, today.FailedChecksPercent),
			Value:    strconv.Itoa(today.TotalAttempts),
		},
		{
			Label:  "Today's Avg Solve Time",
			Value:  fmt.Sprintf("%.1f", today.AvgResolveHours),
			Suffix: "h",
			Info: &models.KPIInfo{
				Label: fmt.Sprintf("%dd Average", window.DaysBack),
				Value: fmt.Sprintf("%.1fh", labs.Current.AvgResolveHours),
			},
		},
	}

	return cards
}

func enrollmentDelta(enr *models.Enrollments, pick func(*models.EnrollmentDeltas) *models.Delta) *models.Delta {
	if enr.Delta == nil {
		return nil
	}
	return pick(enr.Delta)
}

func countCard(label, sublabel string, current, previous int, delta *models.Delta) models.KPICard {
	card := models.KPICard{
		Label:    label,
		Sublabel: sublabel,
		Value:    strconv.Itoa(current),
	}
	if d := countDelta(delta, previous); d != nil {
		card.Delta = d
		card.PreviousValue = strconv.Itoa(previous)
	}
	return card
}

// countDelta renders an enrollment delta badge. A zero abs yields nil: the
// original renders ties as the "no delta" spacer, so they are intentionally
// indistinguishable from not-applicable.
func countDelta(delta *models.Delta, previous int) *models.KPIDelta {
	if delta == nil || delta.Abs == 0 {
		return nil
	}

	arrow, sign := "↓", ""
	positive := delta.Abs >= 0
	if positive {
		arrow, sign = "↑", "+"
	}

	display := fmt.Sprintf("%s %s%.0f", arrow, sign, absValue(delta.Abs))
	if delta.Percent != nil {
		display += fmt.Sprintf(" (%+.0f%%)", *delta.Percent)
	}

	return &models.KPIDelta{
		Abs:      delta.Abs,
		Percent:  delta.Percent,
		Display:  display,
		Positive: positive,
	}
}

func absValue(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
