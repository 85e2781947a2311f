package cancel_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingFlow/internal/api/handlers"
	"github.com/m04kA/SMC-BookingFlow/internal/api/middleware"
	"github.com/m04kA/SMC-BookingFlow/internal/service/ledger"
)

const (
	msgMissingUserID        = "отсутствует ID пользователя"
	msgInvalidAppointmentID = "некорректный ID бронирования"
	msgNotFound             = "бронирование не найдено"
	msgCannotCancel         = "бронирование не может быть отменено"
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

// Handle PATCH /api/v1/appointments/{appointmentId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	appointmentID, err := handlers.ParseID(mux.Vars(r)["appointmentId"])
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/cancel - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	err = h.sessions.Get(r.Context(), userID).Ledger.CancelAppointment(r.Context(), appointmentID)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Appointment not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, ledger.ErrCannotCancel):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Cannot cancel: appointment_id=%s", appointmentID)
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, ledger.ErrTransient):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Backend unavailable: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondBadGateway(w, msgBackendUnavailable)

		default:
			h.logger.Error("PATCH /appointments/{id}/cancel - Failed to cancel appointment: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/cancel - Appointment cancelled successfully: appointment_id=%s, user_id=%s",
		appointmentID, userID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
