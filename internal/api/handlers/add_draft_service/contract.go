package add_draft_service

import (
	"context"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
	"github.com/m04kA/SMC-BookingFlow/internal/service/sessions"
)

type SessionRegistry interface {
	Get(ctx context.Context, userID string) *sessions.Flow
}

type CatalogService interface {
	FindService(ctx context.Context, businessID, serviceID string) (*domain.Service, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
