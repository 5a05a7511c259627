package finalize_checkout

import (
	"github.com/m04kA/SMC-DetailingService/internal/service/bookings/models"
	checkoutUC "github.com/m04kA/SMC-DetailingService/internal/usecase/checkout"
)

// ConfirmationResponse HTTP response model
type ConfirmationResponse struct {
	Booking       *models.BookingResponse `json:"booking"`
	BusinessName  string                  `json:"businessName"`
	ServiceName   string                  `json:"serviceName"`
	CustomerName  string                  `json:"customerName"`
	CustomerEmail string                  `json:"customerEmail"`
	Vehicle       *string                 `json:"vehicle,omitempty"`
	Warnings      []string                `json:"warnings"`
}

// FromUseCaseResponse конвертирует результат use case в HTTP response
func FromUseCaseResponse(c *checkoutUC.ConfirmedBooking) *ConfirmationResponse {
	return &ConfirmationResponse{
		Booking:       models.FromDomainBooking(c.Booking, c.Business.Location()),
		BusinessName:  c.Business.Name,
		ServiceName:   c.Service.Name,
		CustomerName:  c.Customer.Name,
		CustomerEmail: c.Customer.Email,
		Vehicle:       c.Vehicle,
		Warnings:      c.Warnings,
	}
}
