package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DetailingService/internal/domain"
	businessRepo "github.com/m04kA/SMC-DetailingService/internal/infra/storage/business"
	"github.com/m04kA/SMC-DetailingService/internal/service/catalog/models"
)

// Service публичный каталог бизнеса: услуги и часы работы
type Service struct {
	businessRepo BusinessRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(businessRepo BusinessRepository, logger Logger) *Service {
	return &Service{
		businessRepo: businessRepo,
		logger:       logger,
	}
}

// GetCatalog возвращает активные услуги и недельное расписание бизнеса
func (s *Service) GetCatalog(ctx context.Context, businessID int64) (*models.CatalogResponse, error) {
	s.logger.Info("GetCatalog: fetching catalog for business=%d", businessID)

	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			s.logger.Warn("GetCatalog: business id=%d not found", businessID)
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("GetCatalog: failed to get business id=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: GetCatalog - get business: %v", ErrInternal, err)
	}

	services, err := s.businessRepo.GetActiveServices(ctx, businessID)
	if err != nil {
		s.logger.Error("GetCatalog: failed to get services for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: GetCatalog - get services: %v", ErrInternal, err)
	}

	resp := &models.CatalogResponse{
		BusinessID: business.ID,
		Name:       business.Name,
		Phone:      business.Phone,
		Timezone:   business.Location().String(),
		Services:   make([]models.ServiceResponse, 0, len(services)),
		Hours:      make([]models.DayHoursResponse, 0, 7),
	}

	for _, svc := range services {
		resp.Services = append(resp.Services, models.FromDomainService(svc))
	}

	// Неделя с понедельника
	for i := 1; i <= 7; i++ {
		day := time.Weekday(i % 7)
		hours, err := s.businessRepo.GetHours(ctx, businessID, day)
		if err != nil && !errors.Is(err, businessRepo.ErrHoursNotFound) {
			s.logger.Error("GetCatalog: failed to get hours for business=%d day=%s: %v", businessID, day, err)
			return nil, fmt.Errorf("%w: GetCatalog - get hours: %v", ErrInternal, err)
		}
		resp.Hours = append(resp.Hours, models.FromDomainHours(day, hours))
	}

	s.logger.Info("GetCatalog: business=%d has %d active services", businessID, len(resp.Services))
	return resp, nil
}

// GetBusiness возвращает бизнес по ID
func (s *Service) GetBusiness(ctx context.Context, businessID int64) (*domain.Business, error) {
	business, err := s.businessRepo.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, fmt.Errorf("%w: GetBusiness: %v", ErrInternal, err)
	}
	return business, nil
}
