package clear_draft_services

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

// Handle DELETE /api/v1/draft/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /draft/services - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	engine := h.sessions.Get(r.Context(), userID).Draft
	engine.ClearServices()

	h.logger.Info("DELETE /draft/services - Services cleared: user_id=%s", userID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDraft(engine.Draft()))
}
