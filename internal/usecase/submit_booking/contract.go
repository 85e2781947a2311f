package submit_booking

import (
	"context"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
)

// DraftEngine черновик, из которого собирается бронирование
type DraftEngine interface {
	Draft() domain.BookingDraft
	Reset()
}

// Ledger кэш бронирований пользователя
type Ledger interface {
	Append(appointment domain.Appointment)
}

// BookingGateway интерфейс удалённого создания бронирований
type BookingGateway interface {
	CreateBooking(ctx context.Context, payload domain.BookingPayload) (*domain.Appointment, error)
}

// Metrics счётчик исходов отправки
type Metrics interface {
	IncBookingSubmission(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
