package retry

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy параметры повторов
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
	// Exponential включает экспоненциальную задержку вместо постоянной
	Exponential bool
	// Retryable решает, стоит ли повторять после ошибки. nil - повторять любую ошибку
	Retryable func(err error) bool
}

// Do выполняет fn с повторами согласно политике
// Возвращает последнюю ошибку fn (без обёртки backoff)
func Do(ctx context.Context, p Policy, fn func() error) error {
	if p.MaxAttempts <= 1 {
		return fn()
	}

	var b backoff.BackOff
	if p.Exponential {
		eb := backoff.NewExponentialBackOff()
		eb.InitialInterval = p.Delay
		eb.MaxElapsedTime = 0
		b = eb
	} else {
		b = backoff.NewConstantBackOff(p.Delay)
	}
	b = backoff.WithContext(backoff.WithMaxRetries(b, uint64(p.MaxAttempts-1)), ctx)

	op := func() error {
		err := fn()
		if err == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	err := backoff.Retry(op, b)
	var perm *backoff.PermanentError
	if errors.As(err, &perm) {
		return perm.Err
	}
	return err
}
