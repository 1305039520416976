// Package render produces PNG charts from view-model trend data for kiosk
// displays that cannot run the web frontend.
package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bobmcallan/pulse/internal/models"
)

const (
	chartWidth  = 900
	chartHeight = 400
)

// RenderLabsTrend renders the daily lab activity chart: check outcomes plus
// created/resolved lab counts. Expects a date-normalized trend (one point per
// day). Returns raw PNG bytes.
func RenderLabsTrend(points []models.LabTrendPoint) ([]byte, error) {
	xValues := make([]time.Time, 0, len(points))
	passedY := make([]float64, 0, len(points))
	failedY := make([]float64, 0, len(points))
	createdY := make([]float64, 0, len(points))
	resolvedY := make([]float64, 0, len(points))

	for _, p := range points {
		date, err := time.Parse("2006-01-02", p.Date)
		if err != nil {
			continue
		}
		xValues = append(xValues, date)
		passedY = append(passedY, float64(p.PassedChecks))
		failedY = append(failedY, float64(p.FailedChecks))
		createdY = append(createdY, float64(p.CreatedLabs))
		resolvedY = append(resolvedY, float64(p.ResolvedLabs))
	}
	if len(xValues) < 2 {
		return nil, fmt.Errorf("need at least 2 data points, got %d", len(xValues))
	}

	graph := dateChart("Lab Activity", []chart.Series{
		timeSeries("Passed Checks", "00FF88", xValues, passedY),
		timeSeries("Failed Checks", "FF6B6B", xValues, failedY),
		dashedTimeSeries("Created Labs", "00D9FF", xValues, createdY),
		dashedTimeSeries("Resolved Labs", "8B5CF6", xValues, resolvedY),
	})

	return renderPNG(graph)
}

// RenderEnrollmentTrend renders daily enrollment activity.
func RenderEnrollmentTrend(points []models.EnrollmentTrendPoint) ([]byte, error) {
	xValues := make([]time.Time, 0, len(points))
	totalY := make([]float64, 0, len(points))
	passedY := make([]float64, 0, len(points))
	progressY := make([]float64, 0, len(points))

	for _, p := range points {
		date, err := time.Parse("2006-01-02", p.Date)
		if err != nil {
			continue
		}
		xValues = append(xValues, date)
		totalY = append(totalY, float64(p.TotalEnrollments))
		passedY = append(passedY, float64(p.CompletedPassed))
		progressY = append(progressY, float64(p.InProgress))
	}
	if len(xValues) < 2 {
		return nil, fmt.Errorf("need at least 2 data points, got %d", len(xValues))
	}

	graph := dateChart("Enrollments", []chart.Series{
		timeSeries("Total Enrollments", "00FF88", xValues, totalY),
		timeSeries("Completed Passed", "00D9FF", xValues, passedY),
		dashedTimeSeries("In Progress", "FFB627", xValues, progressY),
	})

	return renderPNG(graph)
}

// RenderDocTotalsTrend renders the 12-month documentation totals chart.
func RenderDocTotalsTrend(points []models.DocTotalsPoint) ([]byte, error) {
	xValues := make([]time.Time, 0, len(points))
	usersY := make([]float64, 0, len(points))
	ticketsY := make([]float64, 0, len(points))
	conversationsY := make([]float64, 0, len(points))

	for _, p := range points {
		month, err := time.Parse("2006-01", p.Month)
		if err != nil {
			continue
		}
		xValues = append(xValues, month)
		usersY = append(usersY, p.TotalActiveUsers)
		ticketsY = append(ticketsY, p.TotalTicketsAmount)
		conversationsY = append(conversationsY, p.TotalConversations)
	}
	if len(xValues) < 2 {
		return nil, fmt.Errorf("need at least 2 data points, got %d", len(xValues))
	}

	graph := monthChart("Documentation Totals", []chart.Series{
		timeSeries("Active Users", "00FF88", xValues, usersY),
		timeSeries("Tickets", "FF6B6B", xValues, ticketsY),
		timeSeries("Conversations", "00D9FF", xValues, conversationsY),
	})

	return renderPNG(graph)
}

// RenderDocEngagementTrend renders the 12-month adoption/deflection rates
// chart with a percentage axis.
func RenderDocEngagementTrend(points []models.DocEngagementPoint) ([]byte, error) {
	xValues := make([]time.Time, 0, len(points))
	adoptionY := make([]float64, 0, len(points))
	deflectionY := make([]float64, 0, len(points))
	volumeY := make([]float64, 0, len(points))

	for _, p := range points {
		month, err := time.Parse("2006-01", p.Month)
		if err != nil {
			continue
		}
		xValues = append(xValues, month)
		adoptionY = append(adoptionY, p.AdoptionRate)
		deflectionY = append(deflectionY, p.DeflectionRate)
		volumeY = append(volumeY, p.TicketsVolume)
	}
	if len(xValues) < 2 {
		return nil, fmt.Errorf("need at least 2 data points, got %d", len(xValues))
	}

	graph := monthChart("Documentation Engagement", []chart.Series{
		timeSeries("Adoption Rate", "00FF88", xValues, adoptionY),
		timeSeries("Deflection Rate", "8B5CF6", xValues, deflectionY),
		dashedTimeSeries("Ticket Volume", "FF6B6B", xValues, volumeY),
	})
	graph.YAxis = chart.YAxis{
		ValueFormatter: func(v interface{}) string {
			if f, ok := v.(float64); ok {
				return fmt.Sprintf("%.0f%%", f)
			}
			return ""
		},
	}

	return renderPNG(graph)
}

func timeSeries(name, hexColor string, xValues []time.Time, yValues []float64) chart.TimeSeries {
	return chart.TimeSeries{
		Name: name,
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex(hexColor),
			StrokeWidth: 2.5,
		},
		XValues: xValues,
		YValues: yValues,
	}
}

func dashedTimeSeries(name, hexColor string, xValues []time.Time, yValues []float64) chart.TimeSeries {
	s := timeSeries(name, hexColor, xValues, yValues)
	s.Style.StrokeWidth = 1.5
	s.Style.StrokeDashArray = []float64{5.0, 3.0}
	return s
}

func dateChart(title string, series []chart.Series) chart.Chart {
	return baseChart(title, series, "Jan 2")
}

func monthChart(title string, series []chart.Series) chart.Chart {
	return baseChart(title, series, "Jan 06")
}

func baseChart(title string, series []chart.Series, dateFormat string) chart.Chart {
	return chart.Chart{
		Title:  title,
		Width:  chartWidth,
		Height: chartHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format(dateFormat)
				}
				return ""
			},
		},
		Series: series,
	}
}

func renderPNG(graph chart.Chart) ([]byte, error) {
	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}
