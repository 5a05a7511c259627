package get_booking

import (
	"time"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/internal/service/bookings/models"
)

// BookingDetailsResponse бронирование с признаком возможности отмены
type BookingDetailsResponse struct {
	*models.BookingResponse
	CanCancel bool `json:"canCancel"`
}

// newDetails отменить можно только активную бронь, которая еще не началась
func newDetails(b *models.BookingResponse, now time.Time) *BookingDetailsResponse {
	status := domain.BookingStatus(b.Status)
	active := status == domain.StatusPending || status == domain.StatusConfirmed
	return &BookingDetailsResponse{
		BookingResponse: b,
		CanCancel:       active && now.Before(b.StartsAt),
	}
}
