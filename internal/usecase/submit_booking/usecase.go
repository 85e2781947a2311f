package submit_booking

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/m04kA/SMC-BookingFlow/internal/domain"
	backendClient "github.com/m04kA/SMC-BookingFlow/internal/integrations/backend"
	"github.com/m04kA/SMC-BookingFlow/pkg/ptr"
)

// Исходы отправки для метрик
const (
	OutcomeSuccess    = "success"
	OutcomeValidation = "validation"
	OutcomeConflict   = "conflict"
	OutcomeTransient  = "transient"
	OutcomeInProgress = "in_progress"
	OutcomeInternal   = "internal"
)

// UseCase превращает заполненный черновик в бронирование на backend.
// Один экземпляр на сессию пользователя: флаг inFlight не даёт отправить черновик дважды.
type UseCase struct {
	userID  string
	draft   DraftEngine
	ledger  Ledger
	gateway BookingGateway
	metrics Metrics
	logger  Logger

	inFlight atomic.Bool
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	userID string,
	draft DraftEngine,
	ledger Ledger,
	gateway BookingGateway,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		userID:  userID,
		draft:   draft,
		ledger:  ledger,
		gateway: gateway,
		metrics: metrics,
		logger:  logger,
	}
}

// InFlight сообщает, идёт ли сейчас отправка
func (uc *UseCase) InFlight() bool {
	return uc.inFlight.Load()
}

// Execute отправляет черновик.
//
// Успех: бронирование добавляется в ledger, черновик сбрасывается.
// Ошибка: черновик не трогаем, пользователь может повторить попытку без повторного выбора.
func (uc *UseCase) Execute(ctx context.Context) (*domain.Appointment, error) {
	// 1. Защита от двойного нажатия
	if !uc.inFlight.CompareAndSwap(false, true) {
		uc.logger.Warn("SubmitBooking: user=%s already has a submission in flight", uc.userID)
		uc.observe(OutcomeInProgress)
		return nil, ErrSubmissionInProgress
	}
	defer uc.inFlight.Store(false)

	// 2. Локальная валидация черновика
	draft := uc.draft.Draft()
	endTime, err := validateDraft(draft)
	if err != nil {
		uc.logger.Warn("SubmitBooking: validation failed for user=%s: %v", uc.userID, err)
		uc.observe(OutcomeValidation)
		return nil, err
	}

	payload := buildPayload(uc.userID, draft, endTime.String())

	uc.logger.Info("SubmitBooking: user=%s, business=%s, staff=%s, services=%d, date=%s, time=%s-%s, price=%.2f",
		uc.userID, payload.BusinessID, payload.StaffID, len(payload.ServiceIDs),
		payload.Date, payload.StartTime, payload.EndTime, payload.TotalPrice)

	// 3. Отправка на backend
	appointment, err := uc.gateway.CreateBooking(ctx, payload)
	if err != nil {
		return nil, uc.handleGatewayError(err)
	}

	// 4. Обновляем локальное состояние только после успеха
	uc.ledger.Append(*appointment)
	uc.draft.Reset()

	uc.logger.Info("SubmitBooking: successfully created appointment id=%s for user=%s", appointment.ID, uc.userID)
	uc.observe(OutcomeSuccess)
	return appointment, nil
}

// handleGatewayError сохраняет исходную ошибку в цепочке (%w), добавляя категорию
func (uc *UseCase) handleGatewayError(err error) error {
	switch {
	case errors.Is(err, backendClient.ErrUnavailable):
		uc.logger.Warn("SubmitBooking: backend unavailable for user=%s: %v", uc.userID, err)
		uc.observe(OutcomeTransient)
		return fmt.Errorf("%w: %w", ErrTransient, err)

	case errors.Is(err, backendClient.ErrConflict),
		errors.Is(err, backendClient.ErrRejected),
		errors.Is(err, backendClient.ErrNotFound):
		uc.logger.Warn("SubmitBooking: backend rejected booking for user=%s: %v", uc.userID, err)
		uc.observe(OutcomeConflict)
		return fmt.Errorf("%w: %w", ErrConflict, err)

	default:
		uc.logger.Error("SubmitBooking: failed to create booking for user=%s: %v", uc.userID, err)
		uc.observe(OutcomeInternal)
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
}

func (uc *UseCase) observe(outcome string) {
	if uc.metrics != nil {
		uc.metrics.IncBookingSubmission(outcome)
	}
}

// buildPayload собирает запрос на создание; порядок услуг - порядок выбора
func buildPayload(userID string, draft domain.BookingDraft, endTime string) domain.BookingPayload {
	payload := domain.BookingPayload{
		UserID:     userID,
		BusinessID: draft.Business.ID,
		StaffID:    draft.Staff.ID,
		ServiceIDs: draft.ServiceIDs(),
		Date:       draft.Schedule.Date,
		StartTime:  draft.Schedule.Slot,
		EndTime:    endTime,
		TotalPrice: draft.Totals.Price,
	}

	if draft.Notes != "" {
		payload.Notes = ptr.Ptr(draft.Notes)
	}

	return payload
}
