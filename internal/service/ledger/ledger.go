package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
	backendClient "github.com/m04kA/SMC-BookingFlow/internal/integrations/backend"
)

// Ledger read-through кэш бронирований одного пользователя.
// Кэш обновляется только явным FetchUserAppointments, Append (после успешной отправки)
// и CancelAppointment (после ответа backend).
type Ledger struct {
	userID  string
	gateway BookingGateway
	logger  Logger

	mu           sync.RWMutex
	appointments []domain.Appointment
	lastErr      error
}

// New создает пустой кэш для пользователя userID
func New(userID string, gateway BookingGateway, logger Logger) *Ledger {
	return &Ledger{
		userID:  userID,
		gateway: gateway,
		logger:  logger,
	}
}

// Appointments возвращает копию закэшированного списка
func (l *Ledger) Appointments() []domain.Appointment {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]domain.Appointment, 0, len(l.appointments))
	for _, a := range l.appointments {
		result = append(result, a.Clone())
	}
	return result
}

// LastError возвращает ошибку последней загрузки (nil, если она прошла успешно)
func (l *Ledger) LastError() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lastErr
}

// Stale сообщает, что кэш устарел: последняя загрузка завершилась ошибкой
func (l *Ledger) Stale() bool {
	return l.LastError() != nil
}

// FetchUserAppointments целиком заменяет кэш списком с сервера.
// При ошибке кэш остаётся прежним (лучше устаревшие данные, чем пустой список).
func (l *Ledger) FetchUserAppointments(ctx context.Context) ([]domain.Appointment, error) {
	l.logger.Info("FetchUserAppointments: fetching appointments for user=%s", l.userID)

	appointments, err := l.gateway.GetUserBookings(ctx, l.userID)
	if err != nil {
		wrapped := classifyFetch(err)

		l.mu.Lock()
		l.lastErr = wrapped
		cached := len(l.appointments)
		l.mu.Unlock()

		l.logger.Warn("FetchUserAppointments: keeping %d cached appointments for user=%s: %v",
			cached, l.userID, err)
		return l.Appointments(), wrapped
	}

	fresh := make([]domain.Appointment, 0, len(appointments))
	for _, a := range appointments {
		fresh = append(fresh, a.Clone())
	}

	l.mu.Lock()
	l.appointments = fresh
	l.lastErr = nil
	l.mu.Unlock()

	l.logger.Info("FetchUserAppointments: fetched %d appointments for user=%s", len(fresh), l.userID)
	return l.Appointments(), nil
}

// CancelAppointment сначала отменяет бронирование на сервере и только потом
// меняет статус в кэше. При ошибке кэш не трогаем.
func (l *Ledger) CancelAppointment(ctx context.Context, appointmentID string) error {
	l.logger.Info("CancelAppointment: cancelling appointment id=%s for user=%s", appointmentID, l.userID)

	if err := l.gateway.CancelBooking(ctx, appointmentID); err != nil {
		l.logger.Warn("CancelAppointment: backend refused appointment id=%s: %v", appointmentID, err)
		return classifyCancel(err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.appointments {
		if l.appointments[i].ID == appointmentID {
			l.appointments[i].Status = domain.StatusCancelled
			break
		}
	}

	l.logger.Info("CancelAppointment: appointment id=%s cancelled", appointmentID)
	return nil
}

// Append добавляет созданное бронирование в кэш
func (l *Ledger) Append(appointment domain.Appointment) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.appointments {
		if l.appointments[i].ID == appointment.ID {
			l.appointments[i] = appointment.Clone()
			return
		}
	}
	l.appointments = append(l.appointments, appointment.Clone())
}

// classifyFetch раскладывает ошибки загрузки списка
func classifyFetch(err error) error {
	if errors.Is(err, backendClient.ErrUnavailable) {
		return fmt.Errorf("%w: FetchUserAppointments: %w", ErrTransient, err)
	}
	return fmt.Errorf("%w: FetchUserAppointments: %w", ErrInternal, err)
}

// classifyCancel раскладывает ошибки отмены
func classifyCancel(err error) error {
	switch {
	case errors.Is(err, backendClient.ErrUnavailable):
		return fmt.Errorf("%w: CancelAppointment: %w", ErrTransient, err)
	case errors.Is(err, backendClient.ErrNotFound):
		return fmt.Errorf("%w: CancelAppointment: %w", ErrAppointmentNotFound, err)
	case errors.Is(err, backendClient.ErrConflict), errors.Is(err, backendClient.ErrRejected):
		return fmt.Errorf("%w: CancelAppointment: %w", ErrCannotCancel, err)
	default:
		return fmt.Errorf("%w: CancelAppointment: %w", ErrInternal, err)
	}
}
