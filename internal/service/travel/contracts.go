package travel

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DetailingService/internal/integrations/googlemaps"
)

// Provider внешний источник времени в пути
type Provider interface {
	TravelDuration(ctx context.Context, origin, destination string, departure time.Time) (*googlemaps.Duration, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Metrics счетчики обращений к оценке дороги
type Metrics interface {
	IncTravelLookup(result string)
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
