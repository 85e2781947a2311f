package remove_draft_service

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingFlow/internal/api/handlers"
	"github.com/m04kA/SMC-BookingFlow/internal/api/middleware"
)

const (
	msgMissingUserID    = "отсутствует ID пользователя"
	msgInvalidServiceID = "некорректный ID услуги"
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

// Handle DELETE /api/v1/draft/services/{serviceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /draft/services/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceID, err := handlers.ParseID(mux.Vars(r)["serviceId"])
	if err != nil {
		h.logger.Warn("DELETE /draft/services/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	engine := h.sessions.Get(r.Context(), userID).Draft
	engine.RemoveService(serviceID)

	h.logger.Info("DELETE /draft/services/{id} - Service removed: user_id=%s, service_id=%s", userID, serviceID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDraft(engine.Draft()))
}
