package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/internal/service/slots"
)

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
	GetService(ctx context.Context, businessID, serviceID int64) (*domain.Service, error)
	GetHours(ctx context.Context, businessID int64, day time.Weekday) (*domain.BusinessHours, error)
}

// BookingLedger интерфейс чтения активных бронирований
type BookingLedger interface {
	ListActive(ctx context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error)
}

// CalendarClient интерфейс чтения занятости из внешнего календаря
type CalendarClient interface {
	ListBusy(ctx context.Context, calendarID string, from, to time.Time, loc *time.Location) ([]domain.BusyInterval, error)
}

// SlotEngine интерфейс движка подбора слотов
type SlotEngine interface {
	AvailableSlots(ctx context.Context, req slots.Request) ([]domain.Slot, error)
}

// HoldChecker интерфейс проверки удержаний
type HoldChecker interface {
	IsHeld(key domain.HoldKey) bool
}

// Metrics интерфейс для метрик
type Metrics interface {
	ObserveSlotsReturned(withTravel bool, count int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
