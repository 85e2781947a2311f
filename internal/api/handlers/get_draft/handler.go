package get_draft

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

// Handle GET /api/v1/draft
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /draft - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	draft := h.sessions.Get(r.Context(), userID).Draft.Draft()

	handlers.RespondJSON(w, http.StatusOK, handlers.FromDraft(draft))
}
