package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	businessRepo "github.com/m04kA/SMC-DetailingService/internal/infra/storage/business"
	draftRepo "github.com/m04kA/SMC-DetailingService/internal/infra/storage/draft"
	"github.com/m04kA/SMC-DetailingService/internal/integrations/payment"
	"github.com/m04kA/SMC-DetailingService/internal/service/bookings"
	"github.com/m04kA/SMC-DetailingService/internal/service/notifications"
	"github.com/m04kA/SMC-DetailingService/pkg/txmanager"
)

// Config параметры оформления записи
type Config struct {
	PublicURL string        // Базовый URL сервиса для возврата из оплаты
	CancelURL string        // Куда вернуть клиента при отмене оплаты
	Buffer    time.Duration // Запас к времени в пути в блоках дороги
}

// Deps внешние зависимости оформления
// Calendar, Travel и Notifier могут быть nil - соответствующий шаг пропускается
type Deps struct {
	Businesses BusinessRepository
	Drafts     DraftRepository
	Customers  CustomerRepository
	Ledger     BookingLedger
	TxManager  TransactionManager
	Payment    PaymentProvider
	Holds      HoldReleaser
	Calendar   CalendarClient
	Travel     TravelEstimator
	Notifier   Notifier
}

// UseCase оформление записи: черновик -> оплата -> бронь -> календарь -> письмо
type UseCase struct {
	Deps
	cfg       Config
	validator *validator.Validate
	newID     func() string
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(deps Deps, cfg Config, logger Logger) *UseCase {
	if cfg.Buffer <= 0 {
		cfg.Buffer = domain.DefaultBufferMinutes * time.Minute
	}
	return &UseCase{
		Deps:      deps,
		cfg:       cfg,
		validator: newValidator(),
		newID:     func() string { return uuid.NewString() },
		logger:    logger,
	}
}

// Checkout сохраняет черновик записи и создает платежную сессию
func (uc *UseCase) Checkout(ctx context.Context, req *Request) (*PaymentRedirect, error) {
	uc.logger.Info("Checkout: business=%d, service=%d, date=%s, time=%s", req.BusinessID, req.ServiceID, req.Date, req.Time)

	// 1. Валидация формы
	if err := validateRequest(uc.validator, req); err != nil {
		uc.logger.Warn("Checkout: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем бизнес и услугу
	business, service, err := uc.loadCatalog(ctx, "Checkout", req.BusinessID, req.ServiceID)
	if err != nil {
		return nil, err
	}

	// 3. Разбираем дату и время в часовом поясе бизнеса
	start, clock, err := parseStart(req.Date, req.Time, business.Location())
	if err != nil {
		uc.logger.Warn("Checkout: %v", err)
		return nil, err
	}

	// 4. Сохраняем черновик
	draft := &domain.CheckoutDraft{
		SessionID:  uc.newID(),
		BusinessID: business.ID,
		ServiceID:  service.ID,
		Date:       req.Date,
		Time:       clock,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		Unit:       req.Unit,
		Vehicle:    req.Vehicle,
		Notes:      req.Notes,
	}
	if err := uc.Drafts.Save(ctx, draft); err != nil {
		uc.logger.Error("Checkout: failed to save draft: %v", err)
		return nil, fmt.Errorf("%w: failed to save draft: %v", ErrInternal, err)
	}

	// 5. Создаем платежную сессию
	session, err := uc.Payment.CreateSession(ctx, payment.SessionRequest{
		ProductName:       service.Name,
		Description:       fmt.Sprintf("%s at %s", start.Format("Monday, January 2, 2006"), start.Format("3:04 PM")),
		AmountCents:       service.PriceCents,
		CustomerEmail:     req.Email,
		ClientReferenceID: draft.SessionID,
		SuccessURL:        fmt.Sprintf("%s/api/v1/checkout/%s/finalize", uc.cfg.PublicURL, draft.SessionID),
		CancelURL:         uc.cfg.CancelURL,
		Metadata: map[string]string{
			"business_id": fmt.Sprint(business.ID),
			"service_id":  fmt.Sprint(service.ID),
			"date":        req.Date,
			"time":        clock.String(),
		},
	})
	if err != nil {
		uc.logger.Error("Checkout: payment session failed for draft=%s: %v", draft.SessionID, err)
		if delErr := uc.Drafts.Delete(ctx, draft.SessionID); delErr != nil {
			uc.logger.Warn("Checkout: failed to delete draft=%s: %v", draft.SessionID, delErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	// 6. Привязываем платежную сессию к черновику
	if err := uc.Drafts.AttachPaymentSession(ctx, draft.SessionID, session.ID); err != nil {
		uc.logger.Error("Checkout: failed to attach payment session to draft=%s: %v", draft.SessionID, err)
		return nil, fmt.Errorf("%w: failed to attach payment session: %v", ErrInternal, err)
	}

	uc.logger.Info("Checkout: draft=%s created with payment session=%s", draft.SessionID, session.ID)
	return &PaymentRedirect{SessionID: draft.SessionID, SessionURL: session.URL}, nil
}

// Finalize подтверждает запись после успешной оплаты
// Черновик потребляется один раз: повторный вызов вернет ErrSessionNotFound
func (uc *UseCase) Finalize(ctx context.Context, sessionID string) (*ConfirmedBooking, error) {
	uc.logger.Info("Finalize: session=%s", sessionID)

	// 1. Находим черновик
	draft, err := uc.Drafts.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, draftRepo.ErrDraftNotFound) {
			uc.logger.Warn("Finalize: session=%s not found", sessionID)
			return nil, ErrSessionNotFound
		}
		uc.logger.Error("Finalize: failed to get draft=%s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: failed to get draft: %v", ErrInternal, err)
	}

	// 2. Проверяем оплату у провайдера
	if err := uc.verifyPayment(ctx, draft); err != nil {
		return nil, err
	}

	business, service, err := uc.loadCatalog(ctx, "Finalize", draft.BusinessID, draft.ServiceID)
	if err != nil {
		return nil, err
	}
	start, _, err := parseStart(draft.Date, draft.Time.String(), business.Location())
	if err != nil {
		uc.logger.Error("Finalize: draft=%s has invalid start: %v", sessionID, err)
		return nil, fmt.Errorf("%w: invalid draft start: %v", ErrInternal, err)
	}

	// 3. Потребляем черновик, создаем клиента и бронь в одной транзакции
	var (
		booking  *domain.Booking
		customer *domain.Customer
	)
	err = uc.TxManager.DoSerializable(ctx, func(txCtx context.Context) error {
		taken, err := uc.Drafts.Take(txCtx, sessionID)
		if err != nil {
			if errors.Is(err, draftRepo.ErrDraftNotFound) {
				return ErrSessionNotFound
			}
			return fmt.Errorf("%w: take draft: %w", ErrInternal, err)
		}

		customer, err = uc.Customers.GetOrCreateByEmail(txCtx, &domain.Customer{
			Name:  taken.Name,
			Email: taken.Email,
			Phone: taken.Phone,
		})
		if err != nil {
			return fmt.Errorf("%w: get or create customer: %w", ErrInternal, err)
		}

		booking, err = uc.Ledger.Create(txCtx, domain.BookingDraft{
			BusinessID: taken.BusinessID,
			ServiceID:  taken.ServiceID,
			CustomerID: customer.ID,
			Start:      start,
			Location:   taken.FullAddress(),
			Notes:      taken.Notes,
			Status:     domain.StatusConfirmed,
		})
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			uc.logger.Warn("Finalize: session=%s already consumed", sessionID)
			return nil, ErrSessionNotFound
		case errors.Is(err, bookings.ErrOverlapConflict), txmanager.IsSerializationFailure(err):
			uc.logger.Warn("Finalize: slot %s %s taken before confirmation of session=%s", draft.Date, draft.Time, sessionID)
			return nil, ErrSlotTaken
		default:
			uc.logger.Error("Finalize: failed to create booking for session=%s: %v", sessionID, err)
			return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
	}

	// 4. Слот занят бронью, удержание больше не нужно
	uc.Holds.Release(draft.HoldKey())

	result := &ConfirmedBooking{
		Booking:  booking,
		Business: business,
		Service:  service,
		Customer: customer,
		Vehicle:  draft.Vehicle,
		Warnings: []string{},
	}

	// 5. Календарь и письмо не отменяют запись
	result.Warnings = append(result.Warnings, uc.syncCalendar(ctx, result)...)
	if warning := uc.notify(ctx, result); warning != "" {
		result.Warnings = append(result.Warnings, warning)
	}

	uc.logger.Info("Finalize: booking id=%d confirmed for session=%s (%d warnings)", booking.ID, sessionID, len(result.Warnings))
	return result, nil
}

func (uc *UseCase) verifyPayment(ctx context.Context, draft *domain.CheckoutDraft) error {
	if draft.PaymentSessionID == nil || *draft.PaymentSessionID == "" {
		uc.logger.Warn("Finalize: draft=%s has no payment session", draft.SessionID)
		return ErrPaymentNotCompleted
	}

	session, err := uc.Payment.GetSession(ctx, *draft.PaymentSessionID)
	if err != nil {
		if errors.Is(err, payment.ErrSessionNotFound) {
			uc.logger.Warn("Finalize: payment session=%s not found", *draft.PaymentSessionID)
			return ErrPaymentNotCompleted
		}
		uc.logger.Error("Finalize: failed to verify payment session=%s: %v", *draft.PaymentSessionID, err)
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	if !session.Paid {
		uc.logger.Warn("Finalize: payment session=%s is not paid", session.ID)
		return ErrPaymentNotCompleted
	}
	return nil
}

func (uc *UseCase) loadCatalog(ctx context.Context, op string, businessID, serviceID int64) (*domain.Business, *domain.Service, error) {
	business, err := uc.Businesses.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Warn("%s: business id=%d not found", op, businessID)
			return nil, nil, ErrBusinessNotFound
		}
		uc.logger.Error("%s: failed to get business id=%d: %v", op, businessID, err)
		return nil, nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	service, err := uc.Businesses.GetService(ctx, businessID, serviceID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrServiceNotFound) {
			uc.logger.Warn("%s: service id=%d not found", op, serviceID)
			return nil, nil, ErrServiceNotFound
		}
		uc.logger.Error("%s: failed to get service id=%d: %v", op, serviceID, err)
		return nil, nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("%s: service id=%d is inactive", op, serviceID)
		return nil, nil, ErrServiceNotFound
	}

	return business, service, nil
}

func (uc *UseCase) notify(ctx context.Context, c *ConfirmedBooking) string {
	if uc.Notifier == nil {
		return ""
	}

	err := uc.Notifier.SendConfirmation(ctx, notifications.Confirmation{
		Booking:  c.Booking,
		Business: c.Business,
		Service:  c.Service,
		Customer: c.Customer,
		Vehicle:  c.Vehicle,
	})
	if err != nil {
		uc.logger.Warn("Finalize: confirmation email for booking=%d failed: %v", c.Booking.ID, err)
		return "confirmation email could not be sent"
	}
	return ""
}
