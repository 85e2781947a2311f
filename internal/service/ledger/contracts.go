package ledger

import (
	"context"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
)

// BookingGateway интерфейс удалённого хранилища бронирований
type BookingGateway interface {
	GetUserBookings(ctx context.Context, userID string) ([]domain.Appointment, error)
	CancelBooking(ctx context.Context, appointmentID string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
