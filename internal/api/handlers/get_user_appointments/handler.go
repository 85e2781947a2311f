package get_user_appointments

import (
	"net/http"

	"github.com/m04kA/SMC-BookingFlow/internal/api/handlers"
	"github.com/m04kA/SMC-BookingFlow/internal/api/middleware"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
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

// Handle GET /api/v1/appointments
//
// Ошибка backend не превращается в ошибку ответа: отдаём закэшированный список со stale=true.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	appointments, err := h.sessions.Get(r.Context(), userID).Ledger.FetchUserAppointments(r.Context())
	if err != nil {
		h.logger.Warn("GET /appointments - Serving cached appointments: user_id=%s, count=%d, error=%v",
			userID, len(appointments), err)
		handlers.RespondJSON(w, http.StatusOK, AppointmentsResponse{
			Appointments: handlers.FromAppointments(appointments),
			Stale:        true,
		})
		return
	}

	h.logger.Info("GET /appointments - Appointments retrieved: user_id=%s, count=%d", userID, len(appointments))
	handlers.RespondJSON(w, http.StatusOK, AppointmentsResponse{
		Appointments: handlers.FromAppointments(appointments),
	})
}
