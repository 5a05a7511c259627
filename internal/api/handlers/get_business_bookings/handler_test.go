package get_business_bookings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

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
	gotFilter domain.BusinessBookingsFilter
	gotActor  domain.Actor
	resp      *models.BookingListResponse
	err       error
}

func (s *stubService) ListForOwner(_ context.Context, filter domain.BusinessBookingsFilter, actor domain.Actor) (*models.BookingListResponse, error) {
	s.gotFilter = filter
	s.gotActor = actor
	return s.resp, s.err
}

func serve(svc BookingService, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/businesses/{businessId}/bookings", NewHandler(svc, logger.NewDiscard()).Handle)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set(middleware.UserIDHeader, "100")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_OK(t *testing.T) {
	svc := &stubService{resp: &models.BookingListResponse{Bookings: []models.BookingResponse{
		{ID: 1, StartTime: "10:00 AM", Status: "confirmed"},
		{ID: 2, StartTime: "1:00 PM", Status: "confirmed"},
	}}}

	rec := serve(svc, "/businesses/1/bookings?from=2030-03-04&to=2030-03-04")
	require.Equal(t, http.StatusOK, rec.Code)

	var body models.BookingListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Bookings, 2)
	assert.Equal(t, "1:00 PM", body.Bookings[1].StartTime)

	assert.Equal(t, int64(1), svc.gotFilter.BusinessID)
	assert.Equal(t, int64(100), svc.gotActor.UserID)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&stubService{}, "/businesses/x/bookings").Code)
	assert.Equal(t, http.StatusBadRequest, serve(&stubService{}, "/businesses/1/bookings?from=bad").Code)
	assert.Equal(t, http.StatusNotFound, serve(&stubService{err: bookings.ErrBusinessNotFound}, "/businesses/1/bookings").Code)
	assert.Equal(t, http.StatusForbidden, serve(&stubService{err: bookings.ErrUnauthorized}, "/businesses/1/bookings").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&stubService{err: bookings.ErrInternal}, "/businesses/1/bookings").Code)
}
