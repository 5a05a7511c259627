package hold_slot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	businessRepo "github.com/m04kA/SMC-DetailingService/internal/infra/storage/business"
	"github.com/m04kA/SMC-DetailingService/internal/service/holds"
	"github.com/m04kA/SMC-DetailingService/pkg/logger"
)

type fakeBusinesses struct {
	services map[int64]*domain.Service
}

func (f *fakeBusinesses) GetByID(_ context.Context, id int64) (*domain.Business, error) {
	if id != 1 {
		return nil, businessRepo.ErrBusinessNotFound
	}
	return &domain.Business{ID: 1}, nil
}

func (f *fakeBusinesses) GetService(_ context.Context, _, serviceID int64) (*domain.Service, error) {
	s, ok := f.services[serviceID]
	if !ok {
		return nil, businessRepo.ErrServiceNotFound
	}
	return s, nil
}

func newUseCase() (*UseCase, *holds.Registry) {
	biz := &fakeBusinesses{services: map[int64]*domain.Service{
		10: {ID: 10, DurationMinutes: 90, Active: true},
		11: {ID: 11, DurationMinutes: 30, Active: false},
	}}
	registry := holds.NewRegistry(5*time.Minute, nil, logger.NewDiscard())
	return NewUseCase(biz, registry, logger.NewDiscard()), registry
}

func TestHold_ThenContested(t *testing.T) {
	uc, registry := newUseCase()
	ctx := context.Background()

	resp, err := uc.Hold(ctx, &HoldRequest{BusinessID: 1, ServiceID: 10, Date: "2030-03-04", Time: "10:00 AM"})
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, resp.ExpiresIn)
	assert.True(t, registry.IsHeld(domain.HoldKey{BusinessID: 1, Date: "2030-03-04", Time: "10:00"}))

	// Тот же слот в 24-часовой записи
	_, err = uc.Hold(ctx, &HoldRequest{BusinessID: 1, ServiceID: 10, Date: "2030-03-04", Time: "10:00"})
	assert.ErrorIs(t, err, ErrSlotContested)
}

func TestHold_ReleaseThenHoldAgain(t *testing.T) {
	uc, _ := newUseCase()
	ctx := context.Background()
	req := &HoldRequest{BusinessID: 1, ServiceID: 10, Date: "2030-03-04", Time: "10:00"}

	_, err := uc.Hold(ctx, req)
	require.NoError(t, err)

	release := &ReleaseRequest{BusinessID: 1, Date: "2030-03-04", Time: "10:00"}
	require.NoError(t, uc.Release(ctx, release))
	require.NoError(t, uc.Release(ctx, release))

	_, err = uc.Hold(ctx, req)
	assert.NoError(t, err)
}

func TestHold_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     HoldRequest
		wantErr error
	}{
		{"bad date", HoldRequest{BusinessID: 1, ServiceID: 10, Date: "tomorrow", Time: "10:00"}, ErrInvalidInput},
		{"bad time", HoldRequest{BusinessID: 1, ServiceID: 10, Date: "2030-03-04", Time: "25:00"}, ErrInvalidInput},
		{"no service", HoldRequest{BusinessID: 1, Date: "2030-03-04", Time: "10:00"}, ErrInvalidInput},
		{"unknown business", HoldRequest{BusinessID: 2, ServiceID: 10, Date: "2030-03-04", Time: "10:00"}, ErrBusinessNotFound},
		{"unknown service", HoldRequest{BusinessID: 1, ServiceID: 99, Date: "2030-03-04", Time: "10:00"}, ErrServiceNotFound},
		{"inactive service", HoldRequest{BusinessID: 1, ServiceID: 11, Date: "2030-03-04", Time: "10:00"}, ErrServiceNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newUseCase()
			_, err := uc.Hold(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
