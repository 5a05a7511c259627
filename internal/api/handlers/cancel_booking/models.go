package cancel_booking

import "github.com/m04kA/SMC-DetailingService/internal/domain"

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	BookingID int64  `json:"bookingId"`
	Status    string `json:"status"`
}

func newResponse(bookingID int64) CancelBookingResponse {
	return CancelBookingResponse{BookingID: bookingID, Status: string(domain.StatusCancelled)}
}
