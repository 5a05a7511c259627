package holds

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	"github.com/m04kA/SMC-DetailingService/pkg/logger"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type countingMetrics struct {
	mu     sync.Mutex
	counts map[string]int
}

func (m *countingMetrics) IncHold(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[result]++
}

func newTestRegistry() (*Registry, *manualClock, *countingMetrics) {
	clock := &manualClock{now: time.Date(2030, 3, 4, 9, 0, 0, 0, time.UTC)}
	metrics := &countingMetrics{counts: map[string]int{}}
	reg := NewRegistry(5*time.Minute, metrics, logger.NewDiscard()).WithTimeProvider(clock)
	return reg, clock, metrics
}

var key = domain.HoldKey{BusinessID: 1, Date: "2030-03-05", Time: "10:00"}

func TestHold_SecondHoldIsContested(t *testing.T) {
	reg, _, metrics := newTestRegistry()

	require.NoError(t, reg.Hold(key, time.Hour))
	assert.ErrorIs(t, reg.Hold(key, time.Hour), ErrSlotContested)
	assert.True(t, reg.IsHeld(key))

	assert.Equal(t, 1, metrics.counts[resultAcquired])
	assert.Equal(t, 1, metrics.counts[resultContested])
}

func TestHold_DifferentKeysIndependent(t *testing.T) {
	reg, _, _ := newTestRegistry()

	require.NoError(t, reg.Hold(key, time.Hour))
	require.NoError(t, reg.Hold(domain.HoldKey{BusinessID: 2, Date: key.Date, Time: key.Time}, time.Hour))
	require.NoError(t, reg.Hold(domain.HoldKey{BusinessID: 1, Date: key.Date, Time: "10:10"}, time.Hour))
	assert.Equal(t, 3, reg.Len())
}

func TestHold_InvalidKey(t *testing.T) {
	reg, _, _ := newTestRegistry()

	assert.ErrorIs(t, reg.Hold(domain.HoldKey{BusinessID: 1, Time: "10:00"}, time.Hour), ErrInvalidKey)
	assert.ErrorIs(t, reg.Hold(domain.HoldKey{BusinessID: 1, Date: "2030-03-05"}, time.Hour), ErrInvalidKey)
}

func TestRelease_Idempotent(t *testing.T) {
	reg, _, _ := newTestRegistry()

	reg.Release(key)
	require.NoError(t, reg.Hold(key, time.Hour))
	reg.Release(key)
	reg.Release(key)

	assert.False(t, reg.IsHeld(key))
	assert.Equal(t, 0, reg.Len())
}

func TestHoldReleaseHold(t *testing.T) {
	reg, _, _ := newTestRegistry()

	require.NoError(t, reg.Hold(key, time.Hour))
	reg.Release(key)
	assert.NoError(t, reg.Hold(key, time.Hour))
}

func TestHold_ExpiredHoldIsSweptOnNextHold(t *testing.T) {
	reg, clock, metrics := newTestRegistry()

	require.NoError(t, reg.Hold(key, time.Hour))

	clock.Advance(4*time.Minute + 59*time.Second)
	assert.ErrorIs(t, reg.Hold(key, time.Hour), ErrSlotContested)

	clock.Advance(time.Second)
	assert.False(t, reg.IsHeld(key))
	require.NoError(t, reg.Hold(key, time.Hour))
	assert.Equal(t, 1, metrics.counts[resultExpired])
}

func TestSweepExpired(t *testing.T) {
	reg, clock, _ := newTestRegistry()

	require.NoError(t, reg.Hold(key, time.Hour))
	clock.Advance(2 * time.Minute)
	require.NoError(t, reg.Hold(domain.HoldKey{BusinessID: 1, Date: key.Date, Time: "11:00"}, time.Hour))

	clock.Advance(3 * time.Minute)
	assert.Equal(t, 1, reg.SweepExpired())
	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, 0, reg.SweepExpired())
}

func TestHold_ConcurrentMutualExclusion(t *testing.T) {
	reg, _, _ := newTestRegistry()

	const workers = 64
	var (
		wg      sync.WaitGroup
		success int32
		start   = make(chan struct{})
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if err := reg.Hold(key, time.Hour); err == nil {
				atomic.AddInt32(&success, 1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.EqualValues(t, 1, success)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	reg := NewRegistry(time.Millisecond, nil, logger.NewDiscard())
	require.NoError(t, reg.Hold(key, time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		reg.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return reg.Len() == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
