package projector

import (
	"context"
	"time"

	"github.com/bobmcallan/pulse/internal/common"
	"github.com/bobmcallan/pulse/internal/interfaces"
	"github.com/bobmcallan/pulse/internal/models"
)

// Service projects payloads into view-models. A fetch failure fails the whole
// request, but a shape problem in one section degrades only that panel: the
// panel carries an inline error string and the rest of the view renders.
type Service struct {
	source interfaces.PayloadSource
	logger *common.Logger
}

// NewService creates a new dashboard projection service.
func NewService(source interfaces.PayloadSource, logger *common.Logger) *Service {
	return &Service{source: source, logger: logger}
}

// Dashboard projects both views from a single payload fetch.
func (s *Service) Dashboard(ctx context.Context, state models.UIState) (*models.Dashboard, error) {
	payload, err := s.source.Get(ctx, state)
	if err != nil {
		return nil, err
	}
	return &models.Dashboard{
		Academy:       s.projectAcademy(payload, state),
		Documentation: s.projectDocumentation(payload),
		UpdatedAt:     s.updatedAt(payload),
	}, nil
}

// Academy projects the academy view.
func (s *Service) Academy(ctx context.Context, state models.UIState) (*models.AcademyView, error) {
	payload, err := s.source.Get(ctx, state)
	if err != nil {
		return nil, err
	}
	return s.projectAcademy(payload, state), nil
}

// Documentation projects the documentation view.
func (s *Service) Documentation(ctx context.Context, state models.UIState) (*models.DocumentationView, error) {
	payload, err := s.source.Get(ctx, state)
	if err != nil {
		return nil, err
	}
	return s.projectDocumentation(payload), nil
}

func (s *Service) projectAcademy(payload *models.RawPayload, state models.UIState) *models.AcademyView {
	view := &models.AcademyView{
		SelectedSegment: state.SelectedSegment,
		DaysBack:        state.DaysBack(time.Now().UTC()),
	}

	enr := payload.Enrollments
	if enr != nil && state.SelectedSegment != "" {
		enr = FilterBySegment(enr, state.SelectedSegment)
	}

	if err := payload.ValidateAcademy(); err != nil {
		s.logger.Warn().Err(err).Msg("Academy KPIs unavailable")
		view.KPIError = err.Error()
	} else {
		view.KPIs = AcademyKPIs(enr, payload.Labs)
		view.EnrollmentTrend = enr.Trend
		view.LabsTrend = AggregateLabTrendDaily(payload.Labs.Trend)
		view.DaysBack = enr.Window.DaysBack
	}

	if err := payload.ValidateGuides(); err != nil {
		s.logger.Warn().Err(err).Msg("Guide panel unavailable")
		view.GuidesError = err.Error()
	} else {
		view.Guides = GuideBars(enr.Guides)
	}

	// Segments always come from the unfiltered payload.
	if err := payload.ValidateSegments(); err != nil {
		s.logger.Warn().Err(err).Msg("Segment panel unavailable")
		view.SegmentsError = err.Error()
	} else {
		view.Segments = SegmentSlices(payload.Enrollments.Segments, state.SelectedSegment)
	}

	return view
}

func (s *Service) projectDocumentation(payload *models.RawPayload) *models.DocumentationView {
	view := &models.DocumentationView{PeriodTitle: "Current Month"}

	if err := payload.ValidateDocumentation(); err != nil {
		s.logger.Warn().Err(err).Msg("Documentation view unavailable")
		view.MetricsError = err.Error()
		return view
	}

	doc := payload.Documentation
	view.PeriodTitle = DocPeriodTitle(doc)
	view.Metrics = DocumentationCards(doc)
	view.Trend = DocTotalsTrend(doc.Trend)
	view.EngagementTrend = DocEngagementTrend(doc.EngagementTrend)
	return view
}

func (s *Service) updatedAt(payload *models.RawPayload) string {
	if payload.Timestamp != "" {
		return payload.Timestamp
	}
	if last := s.source.LastFetched(); !last.IsZero() {
		return last.UTC().Format(time.RFC3339)
	}
	return ""
}

var _ interfaces.DashboardService = (*Service)(nil)
