package catalog

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

// BusinessRepository интерфейс репозитория бизнесов и услуг
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
	GetActiveServices(ctx context.Context, businessID int64) ([]*domain.Service, error)
	GetHours(ctx context.Context, businessID int64, day time.Weekday) (*domain.BusinessHours, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
