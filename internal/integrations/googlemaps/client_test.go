package googlemaps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingService/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-key", time.Second, logger.NewDiscard())
}

func TestTravelDuration_PrefersTraffic(t *testing.T) {
	departure := time.Date(2030, 3, 4, 10, 0, 0, 0, time.UTC)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, distanceMatrixPath, r.URL.Path)
		assert.Equal(t, "A St", r.URL.Query().Get("origins"))
		assert.Equal(t, "B Ave", r.URL.Query().Get("destinations"))
		assert.Equal(t, "1898848800", r.URL.Query().Get("departure_time"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"OK","rows":[{"elements":[{"status":"OK",
			"duration":{"text":"20 mins","value":1200},
			"duration_in_traffic":{"text":"1 hour 5 mins","value":3900}}]}]}`))
	})

	d, err := client.TravelDuration(context.Background(), "A St", "B Ave", departure)
	require.NoError(t, err)
	assert.Equal(t, 65, d.Minutes)
	assert.Equal(t, "1 hour 5 mins", d.Text)
}

func TestTravelDuration_FallsBackToSeconds(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"OK","rows":[{"elements":[{"status":"OK",
			"duration":{"text":"20 минут","value":1201}}]}]}`))
	})

	d, err := client.TravelDuration(context.Background(), "A", "B", time.Now())
	require.NoError(t, err)
	assert.Equal(t, 21, d.Minutes)
}

func TestTravelDuration_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"denied", http.StatusOK, `{"status":"REQUEST_DENIED","error_message":"bad key"}`, ErrRequestDenied},
		{"no route", http.StatusOK, `{"status":"OK","rows":[{"elements":[{"status":"ZERO_RESULTS"}]}]}`, ErrNoRoute},
		{"empty rows", http.StatusOK, `{"status":"OK","rows":[]}`, ErrInvalidResponse},
		{"bad json", http.StatusOK, `{`, ErrInvalidResponse},
		{"upstream 503", http.StatusServiceUnavailable, ``, ErrInternal},
		{"bad request", http.StatusBadRequest, `oops`, ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.TravelDuration(context.Background(), "A", "B", time.Now())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
