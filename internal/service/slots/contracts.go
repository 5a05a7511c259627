package slots

import (
	"context"
	"time"
)

// TravelEstimator оценка времени в пути между адресами
// ok=false означает, что данных нет и нужно использовать фиксированный буфер
type TravelEstimator interface {
	Estimate(ctx context.Context, origin, destination string, departure time.Time) (minutes int, ok bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
