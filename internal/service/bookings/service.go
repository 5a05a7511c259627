package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-DetailingService/internal/infra/storage/booking"
	businessRepo "github.com/m04kA/SMC-DetailingService/internal/infra/storage/business"
	customerRepo "github.com/m04kA/SMC-DetailingService/internal/infra/storage/customer"
	"github.com/m04kA/SMC-DetailingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-DetailingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DetailingService/pkg/txmanager"
)

const (
	resultCreated  = "created"
	resultConflict = "conflict"
	resultFailed   = "failed"
)

// Service журнал бронирований
// Единственный компонент, который пишет в таблицу bookings
type Service struct {
	bookingRepo  BookingRepository
	businessRepo BusinessRepository
	customerRepo CustomerRepository
	txManager    TransactionManager
	metrics      Metrics
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
// metrics может быть nil
func NewService(
	bookingRepo BookingRepository,
	businessRepo BusinessRepository,
	customerRepo CustomerRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		businessRepo: businessRepo,
		customerRepo: customerRepo,
		txManager:    txManager,
		metrics:      metrics,
		logger:       logger,
	}
}

// Create создает бронирование, если интервал не пересекается с активными бронями бизнеса
// Проверка и вставка выполняются в одной сериализуемой транзакции под блокировкой строки бизнеса.
// Если вызывающий уже открыл транзакцию, используется она
func (s *Service) Create(ctx context.Context, draft domain.BookingDraft) (*domain.Booking, error) {
	s.logger.Info("Create: business=%d, service=%d, customer=%d, start=%s",
		draft.BusinessID, draft.ServiceID, draft.CustomerID, draft.Start.Format(time.RFC3339))

	if draft.Start.IsZero() || draft.BusinessID <= 0 || draft.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: business, service and start are required", ErrInvalidInput)
	}

	var result *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Блокируем бизнес: параллельные создания для него выстраиваются в очередь
		if err := s.businessRepo.LockForBooking(txCtx, draft.BusinessID); err != nil {
			if errors.Is(err, businessRepo.ErrBusinessNotFound) {
				return ErrBusinessNotFound
			}
			return fmt.Errorf("%w: Create - lock business: %w", ErrInternal, err)
		}

		// 2. Конец брони из длительности услуги, если не задан
		end := draft.End
		if end.IsZero() {
			service, err := s.businessRepo.GetService(txCtx, draft.BusinessID, draft.ServiceID)
			if err != nil {
				if errors.Is(err, businessRepo.ErrServiceNotFound) {
					return ErrServiceNotFound
				}
				return fmt.Errorf("%w: Create - get service: %w", ErrInternal, err)
			}
			end = draft.Start.Add(service.Duration())
		}
		if !draft.Start.Before(end) {
			return fmt.Errorf("%w: start must be before end", ErrInvalidInput)
		}

		// 3. Проверяем пересечения с активными бронями
		overlapping, err := s.bookingRepo.GetOverlapping(txCtx, draft.BusinessID, draft.Start, end)
		if err != nil {
			return fmt.Errorf("%w: Create - get overlapping: %w", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			s.logger.Warn("Create: interval overlaps booking id=%d for business=%d",
				overlapping[0].ID, draft.BusinessID)
			return ErrOverlapConflict
		}

		status := draft.Status
		if status == "" {
			status = domain.StatusConfirmed
		}

		// 4. Создаем бронь
		created, err := s.bookingRepo.Create(txCtx, &domain.Booking{
			BusinessID: draft.BusinessID,
			ServiceID:  draft.ServiceID,
			CustomerID: draft.CustomerID,
			StartTime:  draft.Start,
			EndTime:    end,
			Status:     status,
			Location:   draft.Location,
			Notes:      draft.Notes,
		})
		if err != nil {
			if errors.Is(err, bookingRepo.ErrOverlap) {
				return ErrOverlapConflict
			}
			return fmt.Errorf("%w: Create - insert: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if txmanager.IsSerializationFailure(err) {
			// Транзакцию открыл вызывающий: повторять будет он, ошибку отдаем как есть
			if dbmetrics.IsInTransaction(ctx) {
				s.logger.Warn("Create: serialization failure in caller tx for business=%d: %v", draft.BusinessID, err)
				return nil, err
			}
			// Повторы исчерпаны - значит, слот забрали
			err = ErrOverlapConflict
		}
		if errors.Is(err, ErrOverlapConflict) {
			s.incMetric(resultConflict)
			s.logger.Warn("Create: overlap conflict for business=%d at %s", draft.BusinessID, draft.Start)
			return nil, ErrOverlapConflict
		}
		s.incMetric(resultFailed)
		s.logger.Error("Create: failed for business=%d: %v", draft.BusinessID, err)
		return nil, err
	}

	s.incMetric(resultCreated)
	s.logger.Info("Create: booking id=%d created for business=%d", result.ID, result.BusinessID)
	return result, nil
}

// GetByID получает бронирование по ID
// Доступно владельцу бизнеса и клиенту брони
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, actor.UserID)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	business, err := s.checkAccess(ctx, booking, actor)
	if err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", actor.UserID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking, business.Location()), nil
}

// Cancel отменяет бронирование
// Ошибки в порядке проверки: ErrBookingNotFound, ErrUnauthorized, ErrAlreadyCancelled
func (s *Service) Cancel(ctx context.Context, bookingID int64, actor domain.Actor) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, actor.UserID)

	return s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, bookingID)
		if err != nil {
			return err
		}

		if _, err := s.checkAccess(txCtx, booking, actor); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to booking id=%d", actor.UserID, bookingID)
			return err
		}

		if booking.IsCancelled() {
			s.logger.Warn("Cancel: booking id=%d already cancelled", bookingID)
			return ErrAlreadyCancelled
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, bookingID, domain.StatusCancelled); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("Cancel: booking id=%d cancelled", bookingID)
		return nil
	})
}

// ListActive возвращает активные брони бизнеса, пересекающие [from, to)
func (s *Service) ListActive(ctx context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error) {
	filter.IncludeInactive = false

	bookings, err := s.bookingRepo.GetByBusinessWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListActive: repository error for business=%d: %v", filter.BusinessID, err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %v", ErrInternal, err)
	}
	return bookings, nil
}

// ListForOwner возвращает брони бизнеса за период
// Доступно только владельцу бизнеса
func (s *Service) ListForOwner(ctx context.Context, filter domain.BusinessBookingsFilter, actor domain.Actor) (*models.BookingListResponse, error) {
	s.logger.Info("ListForOwner: business=%d, user=%d", filter.BusinessID, actor.UserID)

	business, err := s.businessRepo.GetByID(ctx, filter.BusinessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("ListForOwner: failed to get business=%d: %v", filter.BusinessID, err)
		return nil, fmt.Errorf("%w: ListForOwner - get business: %v", ErrInternal, err)
	}
	if !business.IsOwner(actor.UserID) {
		s.logger.Warn("ListForOwner: user=%d is not owner of business=%d", actor.UserID, filter.BusinessID)
		return nil, ErrUnauthorized
	}

	bookings, err := s.bookingRepo.GetByBusinessWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListForOwner: repository error for business=%d: %v", filter.BusinessID, err)
		return nil, fmt.Errorf("%w: ListForOwner - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings, business.Location()), nil
}

func (s *Service) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("getBooking: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("getBooking: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return booking, nil
}

// checkAccess разрешает доступ владельцу бизнеса и клиенту брони
func (s *Service) checkAccess(ctx context.Context, booking *domain.Booking, actor domain.Actor) (*domain.Business, error) {
	business, err := s.businessRepo.GetByID(ctx, booking.BusinessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, fmt.Errorf("%w: checkAccess - get business: %v", ErrInternal, err)
	}
	if business.IsOwner(actor.UserID) {
		return business, nil
	}

	customer, err := s.customerRepo.GetByID(ctx, booking.CustomerID)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("%w: checkAccess - get customer: %v", ErrInternal, err)
	}
	if customer.UserID != nil && *customer.UserID == actor.UserID {
		return business, nil
	}

	return nil, ErrUnauthorized
}

func (s *Service) incMetric(result string) {
	if s.metrics != nil {
		s.metrics.IncBookingCreated(result)
	}
}
