package get_business_services

import (
	"context"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
)

type CatalogService interface {
	ListServices(ctx context.Context, businessID string) ([]domain.Service, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
