package update_draft_notes

import (
	"net/http"
	"unicode/utf8"

	"github.com/m04kA/SMC-BookingFlow/internal/api/handlers"
	"github.com/m04kA/SMC-BookingFlow/internal/api/middleware"
	"github.com/m04kA/SMC-BookingFlow/internal/domain"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotesTooLong       = "комментарий слишком длинный"
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

// Handle PUT /api/v1/draft/notes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /draft/notes - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateNotesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /draft/notes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if utf8.RuneCountInString(req.Notes) > domain.MaxNotesLength {
		h.logger.Warn("PUT /draft/notes - Notes too long: user_id=%s", userID)
		handlers.RespondBadRequest(w, msgNotesTooLong)
		return
	}

	engine := h.sessions.Get(r.Context(), userID).Draft
	engine.SetNotes(req.Notes)

	handlers.RespondJSON(w, http.StatusOK, handlers.FromDraft(engine.Draft()))
}
