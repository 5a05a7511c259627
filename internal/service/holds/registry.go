package holds

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
)

const (
	resultAcquired  = "acquired"
	resultContested = "contested"
	resultReleased  = "released"
	resultExpired   = "expired"
)

type entry struct {
	expiresAt time.Time
	duration  time.Duration
}

// Registry хранит короткие удержания слотов на время оформления заказа
// Удержание носит рекомендательный характер: гарантию непересечения дает транзакция при создании брони
type Registry struct {
	mu      sync.Mutex
	holds   map[domain.HoldKey]entry
	ttl     time.Duration
	clock   TimeProvider
	metrics Metrics
	logger  Logger
}

// NewRegistry создает реестр удержаний
// metrics может быть nil
func NewRegistry(ttl time.Duration, metrics Metrics, logger Logger) *Registry {
	if ttl <= 0 {
		ttl = domain.DefaultHoldTTLSeconds * time.Second
	}
	return &Registry{
		holds:   make(map[domain.HoldKey]entry),
		ttl:     ttl,
		clock:   &RealTimeProvider{},
		metrics: metrics,
		logger:  logger,
	}
}

// WithTimeProvider подменяет источник времени
func (r *Registry) WithTimeProvider(clock TimeProvider) *Registry {
	r.clock = clock
	return r
}

// TTL returns hold lifetime
func (r *Registry) TTL() time.Duration {
	return r.ttl
}

// Hold удерживает слот. Возвращает ErrSlotContested, если слот уже удерживается
func (r *Registry) Hold(key domain.HoldKey, duration time.Duration) error {
	if key.Date == "" || key.Time.IsZero() {
		return ErrInvalidKey
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	r.sweepLocked(now)

	if _, ok := r.holds[key]; ok {
		r.incMetric(resultContested)
		r.logger.Warn("Hold: slot business=%d %s is contested", key.BusinessID, key)
		return ErrSlotContested
	}

	r.holds[key] = entry{expiresAt: now.Add(r.ttl), duration: duration}
	r.incMetric(resultAcquired)
	r.logger.Info("Hold: slot business=%d %s held for %s", key.BusinessID, key, r.ttl)

	return nil
}

// Release снимает удержание. Повторный вызов или отсутствующий ключ - не ошибка
func (r *Registry) Release(key domain.HoldKey) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.holds[key]; ok {
		delete(r.holds, key)
		r.incMetric(resultReleased)
		r.logger.Info("Release: slot business=%d %s released", key.BusinessID, key)
	}
}

// IsHeld проверяет, удерживается ли слот (с учетом истечения срока)
func (r *Registry) IsHeld(key domain.HoldKey) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.holds[key]
	return ok && r.clock.Now().Before(e.expiresAt)
}

// SweepExpired удаляет истекшие удержания и возвращает их количество
func (r *Registry) SweepExpired() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.sweepLocked(r.clock.Now())
}

// Len returns number of stored holds, expired ones included until swept
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.holds)
}

// Run периодически удаляет истекшие удержания до отмены ctx
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.SweepExpired(); n > 0 {
				r.logger.Info("HoldSweeper: removed %d expired holds", n)
			}
		}
	}
}

// sweepLocked вызывается под r.mu
func (r *Registry) sweepLocked(now time.Time) int {
	removed := 0
	for key, e := range r.holds {
		if !now.Before(e.expiresAt) {
			delete(r.holds, key)
			removed++
		}
	}
	for i := 0; i < removed; i++ {
		r.incMetric(resultExpired)
	}
	return removed
}

func (r *Registry) incMetric(result string) {
	if r.metrics != nil {
		r.metrics.IncHold(result)
	}
}
