package catalog

import (
	"context"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
)

// BackendClient интерфейс клиента hosted backend (только чтение каталога)
type BackendClient interface {
	GetBusiness(ctx context.Context, businessID string) (*domain.Business, error)
	GetStaffByBusiness(ctx context.Context, businessID string) ([]domain.StaffMember, error)
	GetServicesByBusiness(ctx context.Context, businessID string) ([]domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
