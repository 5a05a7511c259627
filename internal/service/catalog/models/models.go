package models

import (
	"time"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

// ServiceResponse услуга в публичном каталоге
type ServiceResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	PriceCents      int64   `json:"priceCents"`
}

// DayHoursResponse часы работы на день недели
type DayHoursResponse struct {
	Day       string  `json:"day"`
	IsOpen    bool    `json:"isOpen"`
	OpenTime  *string `json:"openTime,omitempty"`  // "9:00 AM"
	CloseTime *string `json:"closeTime,omitempty"` // "5:00 PM"
}

// CatalogResponse публичная информация о бизнесе для формы записи
type CatalogResponse struct {
	BusinessID int64              `json:"businessId"`
	Name       string             `json:"name"`
	Phone      string             `json:"phone,omitempty"`
	Timezone   string             `json:"timezone"`
	Services   []ServiceResponse  `json:"services"`
	Hours      []DayHoursResponse `json:"hours"`
}

// FromDomainService конвертирует услугу в DTO
func FromDomainService(s *domain.Service) ServiceResponse {
	return ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		Price:           float64(s.PriceCents) / 100,
		PriceCents:      s.PriceCents,
	}
}

// FromDomainHours конвертирует часы работы в DTO. hours == nil - выходной
func FromDomainHours(day time.Weekday, hours *domain.BusinessHours) DayHoursResponse {
	resp := DayHoursResponse{Day: day.String()}
	if !hours.IsOpen() {
		return resp
	}

	open := hours.StartTime.Display()
	closeAt := hours.EndTime.Display()
	resp.IsOpen = true
	resp.OpenTime = &open
	resp.CloseTime = &closeAt
	return resp
}
