package get_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingService/internal/api/middleware"
	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/internal/service/bookings"
	"github.com/m04kA/SMC-DetailingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-DetailingService/pkg/logger"
)

type stubService struct {
	resp *models.BookingResponse
	err  error
}

func (s *stubService) GetByID(_ context.Context, _ int64, _ domain.Actor) (*models.BookingResponse, error) {
	return s.resp, s.err
}

var testNow = time.Date(2030, 3, 1, 12, 0, 0, 0, time.UTC)

func serve(svc BookingService, path string) *httptest.ResponseRecorder {
	h := NewHandler(svc, logger.NewDiscard())
	h.now = func() time.Time { return testNow }

	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/bookings/{bookingId}", h.Handle)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set(middleware.UserIDHeader, "200")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_OK(t *testing.T) {
	tests := []struct {
		name      string
		status    string
		startsAt  time.Time
		canCancel bool
	}{
		{"upcoming confirmed", "confirmed", testNow.Add(48 * time.Hour), true},
		{"already started", "confirmed", testNow.Add(-time.Hour), false},
		{"cancelled", "cancelled", testNow.Add(48 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &models.BookingResponse{ID: 5, StartTime: "10:00 AM", Status: tt.status, StartsAt: tt.startsAt}
			rec := serve(&stubService{resp: resp}, "/bookings/5")
			require.Equal(t, http.StatusOK, rec.Code)

			var body struct {
				ID        int64  `json:"id"`
				StartTime string `json:"startTime"`
				CanCancel bool   `json:"canCancel"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, int64(5), body.ID)
			assert.Equal(t, "10:00 AM", body.StartTime)
			assert.Equal(t, tt.canCancel, body.CanCancel)
		})
	}
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&stubService{}, "/bookings/x").Code)
	assert.Equal(t, http.StatusNotFound, serve(&stubService{err: bookings.ErrBookingNotFound}, "/bookings/5").Code)
	assert.Equal(t, http.StatusForbidden, serve(&stubService{err: bookings.ErrUnauthorized}, "/bookings/5").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&stubService{err: bookings.ErrInternal}, "/bookings/5").Code)
}
