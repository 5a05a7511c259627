package travel

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/internal/integrations/googlemaps"
	"github.com/m04kA/SMC-DetailingService/pkg/retry"
)

const (
	resultHit   = "hit"
	resultMiss  = "miss"
	resultError = "error"
)

// Config параметры оценщика
type Config struct {
	Timeout       time.Duration // Общий таймаут на одну оценку, включая повторы
	CacheSize     int
	BucketMinutes int // Время выезда округляется вниз до этой границы для кэша
	RetryAttempts int
	RetryDelay    time.Duration
}

type cacheKey struct {
	origin      string
	destination string
	bucket      int64
}

// Estimator оценивает время в пути и кэширует результаты в LRU
// Безопасен для конкурентного использования: LRU синхронизирован внутри
type Estimator struct {
	provider Provider
	cache    *lru.Cache[cacheKey, domain.TravelEstimate]
	cfg      Config
	clock    TimeProvider
	metrics  Metrics
	logger   Logger
}

// NewEstimator создает оценщик
func NewEstimator(provider Provider, cfg Config, metrics Metrics, logger Logger) (*Estimator, error) {
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = domain.DefaultTravelCacheSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = domain.DefaultTravelTimeout * time.Second
	}
	if cfg.BucketMinutes <= 0 {
		cfg.BucketMinutes = 15
	}
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = 1
	}

	cache, err := lru.New[cacheKey, domain.TravelEstimate](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("travel: create cache: %w", err)
	}

	return &Estimator{
		provider: provider,
		cache:    cache,
		cfg:      cfg,
		clock:    &RealTimeProvider{},
		metrics:  metrics,
		logger:   logger,
	}, nil
}

// WithTimeProvider подменяет источник времени
func (e *Estimator) WithTimeProvider(clock TimeProvider) *Estimator {
	e.clock = clock
	return e
}

// Estimate возвращает время в пути в минутах. ok=false - данных нет, нужно использовать буфер
func (e *Estimator) Estimate(ctx context.Context, origin, destination string, departure time.Time) (int, bool) {
	est, err := e.Lookup(ctx, origin, destination, departure)
	if err != nil {
		return 0, false
	}
	return est.Minutes, true
}

// Lookup возвращает оценку времени в пути
// Время выезда в прошлом сдвигается на ближайшее такое же время суток в будущем:
// провайдер не считает трафик для прошедших моментов
func (e *Estimator) Lookup(ctx context.Context, origin, destination string, departure time.Time) (*domain.TravelEstimate, error) {
	origin = normalizeAddress(origin)
	destination = normalizeAddress(destination)
	if origin == "" || destination == "" {
		return nil, ErrInvalidAddress
	}

	bucket := e.bucket(futureDeparture(departure, e.clock.Now()))
	key := cacheKey{origin: origin, destination: destination, bucket: bucket.Unix()}

	if est, ok := e.cache.Get(key); ok {
		e.incMetric(resultHit)
		return &est, nil
	}
	e.incMetric(resultMiss)

	lookupCtx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	var duration *googlemaps.Duration
	policy := retry.Policy{
		MaxAttempts: e.cfg.RetryAttempts,
		Delay:       e.cfg.RetryDelay,
		Retryable: func(err error) bool {
			return errors.Is(err, googlemaps.ErrInternal)
		},
	}
	err := retry.Do(lookupCtx, policy, func() error {
		var err error
		duration, err = e.provider.TravelDuration(lookupCtx, origin, destination, bucket)
		return err
	})
	if err != nil {
		e.incMetric(resultError)
		e.logger.Warn("TravelEstimate: no data from=%q to=%q at=%s: %v",
			origin, destination, bucket.Format(time.RFC3339), err)
		return nil, fmt.Errorf("%w: %v", ErrNoData, err)
	}

	est := domain.TravelEstimate{DurationText: duration.Text, Minutes: duration.Minutes}
	e.cache.Add(key, est)

	return &est, nil
}

func (e *Estimator) bucket(t time.Time) time.Time {
	return t.Truncate(time.Duration(e.cfg.BucketMinutes) * time.Minute)
}

func (e *Estimator) incMetric(result string) {
	if e.metrics != nil {
		e.metrics.IncTravelLookup(result)
	}
}

// futureDeparture сдвигает момент выезда на целое число суток вперед, пока он не окажется после now
func futureDeparture(departure, now time.Time) time.Time {
	if departure.After(now) {
		return departure
	}
	days := int(now.Sub(departure).Hours() / 24)
	departure = departure.AddDate(0, 0, days)
	for !departure.After(now) {
		departure = departure.AddDate(0, 0, 1)
	}
	return departure
}

func normalizeAddress(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
