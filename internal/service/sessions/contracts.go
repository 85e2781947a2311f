package sessions

import (
	"github.com/m04kA/SMC-BookingFlow/internal/service/ledger"
	"github.com/m04kA/SMC-BookingFlow/internal/usecase/submit_booking"
)

// Gateway удалённый backend бронирований: список, отмена и создание
type Gateway interface {
	ledger.BookingGateway
	submit_booking.BookingGateway
}

// Metrics метрики сессий и отправок
type Metrics interface {
	submit_booking.Metrics
	SetActiveSessions(n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
