package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	businessRepo "github.com/m04kA/SMC-DetailingService/internal/infra/storage/business"
	"github.com/m04kA/SMC-DetailingService/internal/service/slots"
	"github.com/m04kA/SMC-DetailingService/pkg/types"
)

// UseCase use case для получения доступных слотов для записи
type UseCase struct {
	businessRepo BusinessRepository
	ledger       BookingLedger
	calendar     CalendarClient
	engine       SlotEngine
	holds        HoldChecker
	metrics      Metrics
	withTravel   bool
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// calendar может быть nil, если синхронизация с календарем выключена
func NewUseCase(
	businessRepo BusinessRepository,
	ledger BookingLedger,
	calendar CalendarClient,
	engine SlotEngine,
	holds HoldChecker,
	metrics Metrics,
	withTravel bool,
	logger Logger,
) *UseCase {
	return &UseCase{
		businessRepo: businessRepo,
		ledger:       ledger,
		calendar:     calendar,
		engine:       engine,
		holds:        holds,
		metrics:      metrics,
		withTravel:   withTravel,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: business=%d, service=%d, date=%s", req.BusinessID, req.ServiceID, req.Date)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бизнес и его часовой пояс
	business, err := uc.businessRepo.GetByID(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Warn("GetAvailableSlots: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}
	loc := business.Location()

	date, err := parseDate(req.Date, loc)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: %v", err)
		return nil, err
	}

	// 3. Получаем услугу
	service, err := uc.businessRepo.GetService(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("GetAvailableSlots: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 4. Получаем часы работы; отсутствие записи означает выходной
	hours, err := uc.businessRepo.GetHours(ctx, req.BusinessID, date.Weekday())
	if err != nil && !errors.Is(err, businessRepo.ErrHoursNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get hours: %v", ErrInternal, err)
	}
	if !hours.IsOpen() {
		uc.logger.Info("GetAvailableSlots: business=%d is closed on %s", req.BusinessID, req.Date)
		uc.metrics.ObserveSlotsReturned(uc.withTravel, 0)
		return &Response{Date: req.Date, Slots: []Slot{}}, nil
	}

	// 5. Собираем занятость: брони за день и события календаря
	busy, err := uc.busyIntervals(ctx, business, date, loc)
	if err != nil {
		return nil, err
	}

	// 6. Подбираем слоты
	found, err := uc.engine.AvailableSlots(ctx, slots.Request{
		Date:        date,
		Location:    loc,
		Hours:       hours,
		Duration:    service.Duration(),
		Busy:        busy,
		Destination: destination(req),
		Now:         uc.timeProvider.Now(),
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: engine failed: %v", err)
		return nil, fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
	}

	// 7. Скрываем слоты, которые сейчас удерживаются другими клиентами
	result := make([]Slot, 0, len(found))
	for _, s := range found {
		key := domain.HoldKey{BusinessID: business.ID, Date: req.Date, Time: types.NewTimeString(s.Start)}
		if uc.holds.IsHeld(key) {
			continue
		}
		result = append(result, Slot{
			Start:    s.StartDisplay(),
			End:      s.EndDisplay(),
			StartsAt: s.Start.Format(time.RFC3339),
			EndsAt:   s.End.Format(time.RFC3339),
		})
	}

	uc.metrics.ObserveSlotsReturned(uc.withTravel, len(result))
	uc.logger.Info("GetAvailableSlots: %d slots for business=%d, service=%d, date=%s (%d held)",
		len(result), req.BusinessID, req.ServiceID, req.Date, len(found)-len(result))

	return &Response{Date: req.Date, Slots: result}, nil
}

// busyIntervals собирает занятые интервалы дня
// Ошибка календаря не ломает запрос: слоты считаются только по броням
func (uc *UseCase) busyIntervals(ctx context.Context, business *domain.Business, date time.Time, loc *time.Location) ([]domain.BusyInterval, error) {
	from := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	to := from.AddDate(0, 0, 1)

	bookings, err := uc.ledger.ListActive(ctx, domain.BusinessBookingsFilter{
		BusinessID: business.ID,
		From:       &from,
		To:         &to,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	busy := make([]domain.BusyInterval, 0, len(bookings))
	for _, b := range bookings {
		busy = append(busy, domain.BusyInterval{Start: b.StartTime, End: b.EndTime, Location: b.Location})
	}

	if uc.calendar == nil || business.CalendarID == nil || *business.CalendarID == "" {
		return busy, nil
	}

	events, err := uc.calendar.ListBusy(ctx, *business.CalendarID, from, to, loc)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: calendar unavailable for business=%d, using bookings only: %v", business.ID, err)
		return busy, nil
	}

	return append(busy, events...), nil
}
