package submit_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BookingFlow/internal/api/handlers"
	"github.com/m04kA/SMC-BookingFlow/internal/api/middleware"
	submitBooking "github.com/m04kA/SMC-BookingFlow/internal/usecase/submit_booking"
)

const (
	msgMissingUserID        = "отсутствует ID пользователя"
	msgDraftIncomplete      = "черновик бронирования заполнен не полностью"
	msgCrossesMidnight      = "бронирование не может заканчиваться после полуночи"
	msgSubmissionInProgress = "бронирование уже отправляется"
	msgSlotNotAvailable     = "выбранный временной слот недоступен"
	msgBackendUnavailable   = "сервис бронирований временно недоступен, попробуйте ещё раз"
)

type Handler struct {
	sessions SessionRegistry
	logger   Logger
}

func NewHandler(sessions SessionRegistry, logger Logger) *Handler {
	return &Handler{
		sessions: sessions,
		logger:   logger,
	}
}

// Handle POST /api/v1/draft/submit
//
// При любой ошибке черновик сохраняется, и запрос можно повторить.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /draft/submit - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	flow := h.sessions.Get(r.Context(), userID)

	appointment, err := flow.Submit.Execute(r.Context())
	if err != nil {
		var validationErr *submitBooking.ValidationError
		switch {
		case errors.Is(err, submitBooking.ErrCrossesMidnight):
			h.logger.Warn("POST /draft/submit - Booking crosses midnight: user_id=%s", userID)
			handlers.RespondValidationError(w, msgCrossesMidnight, []string{submitBooking.FieldTime})

		case errors.As(err, &validationErr):
			h.logger.Warn("POST /draft/submit - Draft incomplete: user_id=%s, fields=%v", userID, validationErr.Fields)
			handlers.RespondValidationError(w, msgDraftIncomplete, validationErr.Fields)

		case errors.Is(err, submitBooking.ErrSubmissionInProgress):
			h.logger.Warn("POST /draft/submit - Submission in progress: user_id=%s", userID)
			handlers.RespondConflict(w, msgSubmissionInProgress)

		case errors.Is(err, submitBooking.ErrConflict):
			h.logger.Warn("POST /draft/submit - Rejected by backend: user_id=%s, error=%v", userID, err)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, submitBooking.ErrTransient):
			h.logger.Warn("POST /draft/submit - Backend unavailable: user_id=%s, error=%v", userID, err)
			handlers.RespondBadGateway(w, msgBackendUnavailable)

		default:
			h.logger.Error("POST /draft/submit - Failed to submit booking: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /draft/submit - Booking created successfully: appointment_id=%s, user_id=%s",
		appointment.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, handlers.FromAppointment(*appointment))
}
