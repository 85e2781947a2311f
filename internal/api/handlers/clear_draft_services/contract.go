package clear_draft_services

import (
	"context"

	"github.com/m04kA/SMC-BookingFlow/internal/service/sessions"
)

type SessionRegistry interface {
	Get(ctx context.Context, userID string) *sessions.Flow
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
