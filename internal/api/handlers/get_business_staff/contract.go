package get_business_staff

import (
	"context"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
)

type CatalogService interface {
	ListStaff(ctx context.Context, businessID string) ([]domain.StaffMember, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
