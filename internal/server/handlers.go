package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/bobmcallan/pulse/internal/clients/webhook"
	"github.com/bobmcallan/pulse/internal/models"
	"github.com/bobmcallan/pulse/internal/services/render"
)

// loadState loads the persisted UI state, applying transient query overrides
// (period, segment, doc_period) without persisting them. Overrides let the
// frontend preview a different window without committing the kiosk to it.
func (s *Server) loadState(ctx context.Context, r *http.Request) models.UIState {
	state, err := s.app.Storage.SettingsStore().LoadUIState(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to load UI state, using defaults")
		state = models.DefaultUIState()
	}
	state = state.Normalize()

	q := r.URL.Query()
	if period := q.Get("period"); period != "" {
		state.SelectedPeriod = period
	}
	if docPeriod := q.Get("doc_period"); docPeriod != "" {
		state.DocPeriod = docPeriod
	}
	if q.Has("segment") {
		state.SelectedSegment = q.Get("segment")
	}
	return state.Normalize()
}

// writeFetchError maps payload fetch failures onto the API error taxonomy.
// Shape and value-parse problems never reach here: they degrade individual
// panels inside an otherwise successful projection.
func (s *Server) writeFetchError(w http.ResponseWriter, err error) {
	var apiErr *webhook.APIError
	switch {
	case errors.Is(err, webhook.ErrTimeout):
		WriteErrorWithCode(w, http.StatusGatewayTimeout, err.Error(), "timeout")
	case errors.As(err, &apiErr):
		WriteErrorWithCode(w, http.StatusBadGateway, apiErr.Error(), "upstream")
	default:
		WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

// --- Dashboard handlers ---

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	state := s.loadState(r.Context(), r)

	dashboard, err := s.app.DashboardService.Dashboard(r.Context(), state)
	if err != nil {
		s.writeFetchError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, dashboard)
}

func (s *Server) handleAcademy(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	state := s.loadState(r.Context(), r)

	view, err := s.app.DashboardService.Academy(r.Context(), state)
	if err != nil {
		s.writeFetchError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, view)
}

func (s *Server) handleDocumentation(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	state := s.loadState(r.Context(), r)

	view, err := s.app.DashboardService.Documentation(r.Context(), state)
	if err != nil {
		s.writeFetchError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, view)
}

// handleRefresh handles POST /api/refresh: bypass the cache, fetch, and return
// the freshly projected dashboard.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	state := s.loadState(r.Context(), r)

	if _, err := s.app.PayloadSource.Refresh(r.Context(), state); err != nil {
		s.writeFetchError(w, err)
		return
	}

	dashboard, err := s.app.DashboardService.Dashboard(r.Context(), state)
	if err != nil {
		s.writeFetchError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, dashboard)
}

// --- Settings handlers ---

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		state, err := s.app.Storage.SettingsStore().LoadUIState(r.Context())
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "Failed to load settings: "+err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, state.Normalize())

	case http.MethodPut:
		var state models.UIState
		if !DecodeJSON(w, r, &state) {
			return
		}
		state = state.Normalize()
		if err := s.app.Storage.SettingsStore().SaveUIState(r.Context(), state); err != nil {
			WriteError(w, http.StatusInternalServerError, "Failed to save settings: "+err.Error())
			return
		}
		// The refresh interval may have changed.
		s.app.StartRefreshScheduler()
		WriteJSON(w, http.StatusOK, state)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut)
	}
}

// handleSegmentToggle handles POST /api/settings/segment: toggle the segment
// filter and return the updated state. Selecting the active segment clears it.
func (s *Server) handleSegmentToggle(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var body struct {
		Segment string `json:"segment"`
	}
	if !DecodeJSON(w, r, &body) {
		return
	}

	store := s.app.Storage.SettingsStore()
	state, err := store.LoadUIState(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to load settings: "+err.Error())
		return
	}
	state = state.Normalize().WithSegmentToggled(body.Segment)

	if err := store.SaveUIState(r.Context(), state); err != nil {
		WriteError(w, http.StatusInternalServerError, "Failed to save settings: "+err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, state)
}

// --- Chart handlers ---

func (s *Server) handleLabsChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	state := s.loadState(r.Context(), r)

	view, err := s.app.DashboardService.Academy(r.Context(), state)
	if err != nil {
		s.writeFetchError(w, err)
		return
	}

	png, err := render.RenderLabsTrend(view.LabsTrend)
	if err != nil {
		WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	WritePNG(w, png)
}

func (s *Server) handleEnrollmentsChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	state := s.loadState(r.Context(), r)

	view, err := s.app.DashboardService.Academy(r.Context(), state)
	if err != nil {
		s.writeFetchError(w, err)
		return
	}

	png, err := render.RenderEnrollmentTrend(view.EnrollmentTrend)
	if err != nil {
		WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	WritePNG(w, png)
}

func (s *Server) handleDocTrendChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	state := s.loadState(r.Context(), r)

	view, err := s.app.DashboardService.Documentation(r.Context(), state)
	if err != nil {
		s.writeFetchError(w, err)
		return
	}

	png, err := render.RenderDocTotalsTrend(view.Trend)
	if err != nil {
		WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	WritePNG(w, png)
}

func (s *Server) handleDocEngagementChart(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	state := s.loadState(r.Context(), r)

	view, err := s.app.DashboardService.Documentation(r.Context(), state)
	if err != nil {
		s.writeFetchError(w, err)
		return
	}

	png, err := render.RenderDocEngagementTrend(view.EngagementTrend)
	if err != nil {
		WriteError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	WritePNG(w, png)
}

// --- Widget handlers ---

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	weather, err := s.app.WeatherClient.Current(r.Context())
	if err != nil {
		// Cosmetic widget: report unavailability, don't error the kiosk.
		s.logger.Debug().Err(err).Msg("Weather unavailable")
		WriteJSON(w, http.StatusOK, map[string]interface{}{"available": false})
		return
	}
	WriteJSON(w, http.StatusOK, weather)
}
