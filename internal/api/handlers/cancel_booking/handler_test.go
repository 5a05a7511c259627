package cancel_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-DetailingService/internal/api/middleware"
	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/internal/service/bookings"
	"github.com/m04kA/SMC-DetailingService/pkg/logger"
)

type stubService struct {
	err   error
	actor domain.Actor
}

func (s *stubService) Cancel(_ context.Context, _ int64, actor domain.Actor) error {
	s.actor = actor
	return s.err
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		user   string
		err    error
		status int
	}{
		{"cancelled", "/bookings/5/cancel", "200", nil, http.StatusOK},
		{"no user header", "/bookings/5/cancel", "", nil, http.StatusUnauthorized},
		{"bad id", "/bookings/abc/cancel", "200", nil, http.StatusBadRequest},
		{"not found", "/bookings/5/cancel", "200", bookings.ErrBookingNotFound, http.StatusNotFound},
		{"forbidden", "/bookings/5/cancel", "300", bookings.ErrUnauthorized, http.StatusForbidden},
		{"already cancelled", "/bookings/5/cancel", "200", bookings.ErrAlreadyCancelled, http.StatusConflict},
		{"internal", "/bookings/5/cancel", "200", bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{err: tt.err}
			r := mux.NewRouter()
			r.Use(middleware.Auth)
			r.HandleFunc("/bookings/{bookingId}/cancel", NewHandler(svc, logger.NewDiscard()).Handle).Methods(http.MethodPatch)

			req := httptest.NewRequest(http.MethodPatch, tt.path, nil)
			if tt.user != "" {
				req.Header.Set(middleware.UserIDHeader, tt.user)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.JSONEq(t, `{"bookingId":5,"status":"cancelled"}`, rec.Body.String())
				assert.Equal(t, int64(200), svc.actor.UserID)
			}
		})
	}
}
