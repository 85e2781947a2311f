package update_draft_schedule

import (
	"net/http"

	"github.com/m04kA/SMC-BookingFlow/internal/api/handlers"
	"github.com/m04kA/SMC-BookingFlow/internal/api/middleware"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
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

// Handle PUT /api/v1/draft/schedule
//
// Доступность слота здесь не проверяется: это делает backend при отправке.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /draft/schedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /draft/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := req.validateDate(); err != nil {
		h.logger.Warn("PUT /draft/schedule - Invalid date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	if err := req.validateTime(); err != nil {
		h.logger.Warn("PUT /draft/schedule - Invalid time %q: %v", req.Time, err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	engine := h.sessions.Get(r.Context(), userID).Draft
	engine.SetDateTime(req.Date, req.Time)

	h.logger.Info("PUT /draft/schedule - Schedule selected: user_id=%s, date=%s, time=%s", userID, req.Date, req.Time)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDraft(engine.Draft()))
}
