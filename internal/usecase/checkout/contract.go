package checkout

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/internal/integrations/gcalendar"
	"github.com/m04kA/SMC-DetailingService/internal/integrations/payment"
	"github.com/m04kA/SMC-DetailingService/internal/service/notifications"
)

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
	GetService(ctx context.Context, businessID, serviceID int64) (*domain.Service, error)
}

// DraftRepository интерфейс хранилища черновиков оформления
type DraftRepository interface {
	Save(ctx context.Context, d *domain.CheckoutDraft) error
	AttachPaymentSession(ctx context.Context, sessionID, paymentSessionID string) error
	Get(ctx context.Context, sessionID string) (*domain.CheckoutDraft, error)
	Take(ctx context.Context, sessionID string) (*domain.CheckoutDraft, error)
	Delete(ctx context.Context, sessionID string) error
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetOrCreateByEmail(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
}

// BookingLedger интерфейс журнала бронирований
type BookingLedger interface {
	Create(ctx context.Context, draft domain.BookingDraft) (*domain.Booking, error)
	ListActive(ctx context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// PaymentProvider интерфейс платежного провайдера
type PaymentProvider interface {
	CreateSession(ctx context.Context, req payment.SessionRequest) (*payment.Session, error)
	GetSession(ctx context.Context, id string) (*payment.Session, error)
}

// HoldReleaser интерфейс снятия удержания слота
type HoldReleaser interface {
	Release(key domain.HoldKey)
}

// CalendarClient интерфейс записи во внешний календарь
type CalendarClient interface {
	CreateBookingEvent(ctx context.Context, calendarID string, ev gcalendar.Event) (string, error)
	CreateTravelBlock(ctx context.Context, calendarID string, ev gcalendar.Event) (string, error)
}

// TravelEstimator интерфейс оценки времени в пути
type TravelEstimator interface {
	Lookup(ctx context.Context, origin, destination string, departure time.Time) (*domain.TravelEstimate, error)
}

// Notifier интерфейс отправки подтверждения клиенту
type Notifier interface {
	SendConfirmation(ctx context.Context, c notifications.Confirmation) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
