package models

import (
	"time"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/pkg/types"
)

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         int64     `json:"id"`
	BusinessID int64     `json:"businessId"`
	ServiceID  int64     `json:"serviceId"`
	CustomerID int64     `json:"customerId"`
	StartsAt   time.Time `json:"startsAt"`
	EndsAt     time.Time `json:"endsAt"`
	Date       string    `json:"date"`      // "2030-03-04" в часовом поясе бизнеса
	StartTime  string    `json:"startTime"` // "10:00 AM"
	EndTime    string    `json:"endTime"`   // "11:00 AM"
	Status     string    `json:"status"`
	Location   string    `json:"location,omitempty"`
	Notes      *string   `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// FromDomainBooking конвертирует domain модель в DTO
// loc - часовой пояс бизнеса для отображения
func FromDomainBooking(b *domain.Booking, loc *time.Location) *BookingResponse {
	if b == nil {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}

	start := b.StartTime.In(loc)
	end := b.EndTime.In(loc)

	return &BookingResponse{
		ID:         b.ID,
		BusinessID: b.BusinessID,
		ServiceID:  b.ServiceID,
		CustomerID: b.CustomerID,
		StartsAt:   start,
		EndsAt:     end,
		Date:       start.Format(domain.DateFormat),
		StartTime:  start.Format(types.DisplayLayout),
		EndTime:    end.Format(types.DisplayLayout),
		Status:     string(b.Status),
		Location:   b.Location,
		Notes:      b.Notes,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, loc *time.Location) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, loc); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
