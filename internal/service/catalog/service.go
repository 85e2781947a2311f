package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
	backendClient "github.com/m04kA/SMC-BookingFlow/internal/integrations/backend"
)

// Service сквозное чтение каталога: бизнес, мастера, услуги.
// Ни кэша, ни ретраев - ошибки backend возвращаются вызывающему.
type Service struct {
	client BackendClient
	logger Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(client BackendClient, logger Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// GetBusiness получает бизнес по ID
func (s *Service) GetBusiness(ctx context.Context, businessID string) (*domain.Business, error) {
	business, err := s.client.GetBusiness(ctx, businessID)
	if err != nil {
		if errors.Is(err, backendClient.ErrNotFound) {
			s.logger.Warn("GetBusiness: business id=%s not found", businessID)
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("GetBusiness: backend error for business id=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: GetBusiness: %w", ErrBackend, err)
	}
	return business, nil
}

// ListStaff возвращает активных сотрудников бизнеса в порядке backend
func (s *Service) ListStaff(ctx context.Context, businessID string) ([]domain.StaffMember, error) {
	staff, err := s.client.GetStaffByBusiness(ctx, businessID)
	if err != nil {
		if errors.Is(err, backendClient.ErrNotFound) {
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("ListStaff: backend error for business id=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: ListStaff: %w", ErrBackend, err)
	}
	return staff, nil
}

// ListServices возвращает услуги бизнеса в порядке backend
func (s *Service) ListServices(ctx context.Context, businessID string) ([]domain.Service, error) {
	services, err := s.client.GetServicesByBusiness(ctx, businessID)
	if err != nil {
		if errors.Is(err, backendClient.ErrNotFound) {
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("ListServices: backend error for business id=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: ListServices: %w", ErrBackend, err)
	}
	return services, nil
}

// FindStaff ищет активного мастера бизнеса по ID
func (s *Service) FindStaff(ctx context.Context, businessID, staffID string) (*domain.StaffMember, error) {
	staff, err := s.ListStaff(ctx, businessID)
	if err != nil {
		return nil, err
	}

	for i := range staff {
		if staff[i].ID == staffID {
			return &staff[i], nil
		}
	}

	s.logger.Warn("FindStaff: staff id=%s not found in business id=%s", staffID, businessID)
	return nil, ErrStaffNotFound
}

// FindService ищет услугу бизнеса по ID
func (s *Service) FindService(ctx context.Context, businessID, serviceID string) (*domain.Service, error) {
	services, err := s.ListServices(ctx, businessID)
	if err != nil {
		return nil, err
	}

	for i := range services {
		if services[i].ID == serviceID {
			return &services[i], nil
		}
	}

	s.logger.Warn("FindService: service id=%s not found in business id=%s", serviceID, businessID)
	return nil, ErrServiceNotFound
}
