package projector

import (
	"fmt"

	"github.com/bobmcallan/pulse/internal/models"
)

// docMetric describes one documentation card. Inverse-polarity metrics improve
// when they drop (fewer tickets is good), so their delta coloring flips.
type docMetric struct {
	label    string
	decimals int
	suffix   string
	inverse  bool
	current  models.Flex
	previous models.Flex
	delta    *models.DocDelta
}

// DocumentationCards builds the fixed ordered list of 6 documentation metric
// cards. Values parse through Flex, so a fraction with a zero denominator or a
// missing field renders "N/A" with no delta rather than failing the panel.
func DocumentationCards(doc *models.Documentation) []models.KPICard {
	var cur, prev models.SupportMetrics
	if doc.Support != nil {
		cur = *doc.Support
	}
	if doc.SupportPrevious != nil {
		prev = *doc.SupportPrevious
	}

	var aiCur, aiPrev models.AIAgentMetrics
	if doc.AIAgent != nil {
		aiCur = *doc.AIAgent
	}
	if doc.AIAgentPrevious != nil {
		aiPrev = *doc.AIAgentPrevious
	}

	var supportDeltas models.SupportDeltas
	if doc.SupportDelta != nil {
		supportDeltas = *doc.SupportDelta
	}
	var aiDeltas models.AIAgentDeltas
	if doc.AIAgentDelta != nil {
		aiDeltas = *doc.AIAgentDelta
	}

	metrics := []docMetric{
		{label: "Active users", decimals: 0, current: cur.ActiveUsers, previous: prev.ActiveUsers, delta: supportDeltas.ActiveUsers},
		{label: "Ticket Amount", decimals: 0, inverse: true, current: cur.TicketsAmount, previous: prev.TicketsAmount, delta: supportDeltas.TicketsAmount},
		{label: "Ticket Volume", decimals: 2, suffix: "%", inverse: true, current: cur.TicketsVolumePercent, previous: prev.TicketsVolumePercent, delta: supportDeltas.TicketsVolumePercent},
		{label: "Total Intercom Conversations", decimals: 0, current: cur.TotalConversations, previous: prev.TotalConversations, delta: supportDeltas.TotalConversations},
		{label: "Adoption rate", decimals: 2, suffix: "%", current: aiCur.AdoptionRatePercent, previous: aiPrev.AdoptionRatePercent, delta: aiDeltas.AdoptionRatePercent},
		{label: "Deflection rate", decimals: 2, suffix: "%", current: aiCur.DeflectionRatePercent, previous: aiPrev.DeflectionRatePercent, delta: aiDeltas.DeflectionRatePercent},
	}

	cards := make([]models.KPICard, 0, len(metrics))
	for _, m := range metrics {
		card := models.KPICard{
			Label:  m.label,
			Value:  m.current.Format(m.decimals),
			Suffix: m.suffix,
		}
		if d := docDelta(m.delta, m.decimals, m.inverse); d != nil {
			card.Delta = d
			if m.previous.Available() {
				card.PreviousValue = m.previous.Format(m.decimals)
			}
		}
		cards = append(cards, card)
	}
	return cards
}

// docDelta renders a documentation delta badge. Deltas whose absolute change
// is unavailable or zero collapse to nil, matching the count-card spacer rule.
func docDelta(delta *models.DocDelta, decimals int, inverse bool) *models.KPIDelta {
	if delta == nil {
		return nil
	}
	abs, ok := delta.Absolute.Float()
	if !ok || abs == 0 {
		return nil
	}

	arrow, sign := "↓", ""
	if abs >= 0 {
		arrow, sign = "↑", "+"
	}

	display := fmt.Sprintf("%s %s%.*f", arrow, sign, decimals, absValue(abs))
	out := &models.KPIDelta{
		Abs:      abs,
		Display:  display,
		Positive: abs >= 0,
	}
	if pct, ok := delta.Percent.Float(); ok {
		out.Percent = &pct
		out.Display += fmt.Sprintf(" (%+.1f%%)", pct)
	}
	if inverse {
		out.Positive = abs < 0
	}
	return out
}

// DocPeriodTitle names the month the metrics cover.
func DocPeriodTitle(doc *models.Documentation) string {
	if doc.Window != nil && doc.Window.Month != "" {
		return doc.Window.Month
	}
	return "Current Month"
}

// DocTotalsTrend resolves the monthly totals trend for charting. Unavailable
// values chart as zero.
func DocTotalsTrend(trend []models.DocTrendPoint) []models.DocTotalsPoint {
	out := make([]models.DocTotalsPoint, 0, len(trend))
	for _, p := range trend {
		out = append(out, models.DocTotalsPoint{
			Month:              p.Month,
			TotalActiveUsers:   p.TotalActiveUsers.Or(0),
			TotalTicketsAmount: p.TotalTicketsAmount.Or(0),
			TotalConversations: p.TotalConversations.Or(0),
		})
	}
	return out
}

// DocEngagementTrend resolves the monthly rates trend for charting.
func DocEngagementTrend(trend []models.DocTrendPoint) []models.DocEngagementPoint {
	out := make([]models.DocEngagementPoint, 0, len(trend))
	for _, p := range trend {
		out = append(out, models.DocEngagementPoint{
			Month:          p.Month,
			AdoptionRate:   p.AdoptionRatePercent.Or(0),
			DeflectionRate: p.DeflectionRatePercent.Or(0),
			TicketsVolume:  p.TicketsVolumePercent.Or(0),
		})
	}
	return out
}
