package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/pulse/internal/models"
)

func TestFetchDashboard_Success(t *testing.T) {
	var gotContentType string
	var gotBody models.FetchRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"enrollments": map[string]interface{}{
				"current": map[string]int{"total_enrollments": 190},
			},
			"timestamp": "2025-03-15T10:00:00Z",
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	payload, err := client.FetchDashboard(context.Background(), models.FetchRequest{
		DaysBack:   7,
		MonthStart: "2025-03-01",
	})
	require.NoError(t, err)

	assert.Equal(t, "text/plain", gotContentType, "webhook CORS contract requires a non-preflighted content type")
	assert.Equal(t, 7, gotBody.DaysBack)
	assert.Equal(t, "2025-03-01", gotBody.MonthStart)

	require.NotNil(t, payload.Enrollments)
	assert.Equal(t, 190, payload.Enrollments.Current.TotalEnrollments)
	assert.Equal(t, "2025-03-15T10:00:00Z", payload.Timestamp)
}

func TestFetchDashboard_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, WithTimeout(20*time.Millisecond))
	_, err := client.FetchDashboard(context.Background(), models.FetchRequest{DaysBack: 7})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTimeout), "timeouts must map to ErrTimeout, got: %v", err)
}

func TestFetchDashboard_ContextDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	client := NewClient(srv.URL)
	_, err := client.FetchDashboard(ctx, models.FetchRequest{DaysBack: 7})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTimeout))
}

func TestFetchDashboard_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "query failed upstream", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.FetchDashboard(context.Background(), models.FetchRequest{DaysBack: 7})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "query failed upstream")
	assert.Equal(t, srv.URL, apiErr.Endpoint)
}

func TestFetchDashboard_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.FetchDashboard(context.Background(), models.FetchRequest{DaysBack: 7})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestFetchDashboard_FlexFieldsDecode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"documentation": {
				"support": {
					"active_users": "1597/100",
					"tickets_amount": "42",
					"tickets_volume_percent": 2.63,
					"total_conversations": "5/0"
				}
			}
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	payload, err := client.FetchDashboard(context.Background(), models.FetchRequest{DaysBack: 7})
	require.NoError(t, err, "fraction and string numbers must decode without error")

	support := payload.Documentation.Support
	assert.InDelta(t, 15.97, support.ActiveUsers.Or(0), 1e-9)
	assert.Equal(t, 42.0, support.TicketsAmount.Or(0))
	assert.False(t, support.TotalConversations.Available(), "zero denominator degrades to unavailable")
}
