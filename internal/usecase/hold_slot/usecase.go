package hold_slot

import (
	"context"
	"errors"
	"fmt"

	businessRepo "github.com/m04kA/SMC-DetailingService/internal/infra/storage/business"
	"github.com/m04kA/SMC-DetailingService/internal/service/holds"
)

// UseCase удержание выбранного слота на время оформления записи
type UseCase struct {
	businessRepo BusinessRepository
	holds        HoldRegistry
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(businessRepo BusinessRepository, holds HoldRegistry, logger Logger) *UseCase {
	return &UseCase{
		businessRepo: businessRepo,
		holds:        holds,
		logger:       logger,
	}
}

// Hold удерживает слот на длительность услуги
func (uc *UseCase) Hold(ctx context.Context, req *HoldRequest) (*HoldResponse, error) {
	uc.logger.Info("HoldSlot: business=%d, service=%d, date=%s, time=%s", req.BusinessID, req.ServiceID, req.Date, req.Time)

	// 1. Валидация входных данных
	key, err := parseKey(req.BusinessID, req.Date, req.Time)
	if err != nil {
		uc.logger.Warn("HoldSlot: validation failed: %v", err)
		return nil, err
	}
	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}

	// 2. Проверяем бизнес и услугу
	if _, err := uc.businessRepo.GetByID(ctx, req.BusinessID); err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("HoldSlot: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	service, err := uc.businessRepo.GetService(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("HoldSlot: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		return nil, ErrServiceNotFound
	}

	// 3. Удерживаем слот
	if err := uc.holds.Hold(key, service.Duration()); err != nil {
		if errors.Is(err, holds.ErrSlotContested) {
			return nil, ErrSlotContested
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return &HoldResponse{ExpiresIn: uc.holds.TTL()}, nil
}

// Release снимает удержание. Отсутствующее удержание не ошибка
func (uc *UseCase) Release(_ context.Context, req *ReleaseRequest) error {
	key, err := parseKey(req.BusinessID, req.Date, req.Time)
	if err != nil {
		uc.logger.Warn("ReleaseSlot: validation failed: %v", err)
		return err
	}

	uc.holds.Release(key)
	return nil
}
