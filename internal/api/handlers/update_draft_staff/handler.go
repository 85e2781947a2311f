package update_draft_staff

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BookingFlow/internal/api/handlers"
	"github.com/m04kA/SMC-BookingFlow/internal/api/middleware"
	"github.com/m04kA/SMC-BookingFlow/internal/service/catalog"
)

const (
	msgMissingUserID       = "отсутствует ID пользователя"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidStaffID      = "некорректный ID мастера"
	msgBusinessNotSelected = "сначала выберите компанию"
	msgStaffNotFound       = "мастер не найден"
	msgStaffInactive       = "мастер сейчас не принимает записи"
	msgBackendError        = "сервис каталога временно недоступен"
	msgBusinessChanged     = "компания в черновике изменилась, повторите выбор мастера"
)

type Handler struct {
	sessions SessionRegistry
	catalog  CatalogService
	logger   Logger
}

func NewHandler(sessions SessionRegistry, catalog CatalogService, logger Logger) *Handler {
	return &Handler{
		sessions: sessions,
		catalog:  catalog,
		logger:   logger,
	}
}

// Handle PUT /api/v1/draft/staff
//
// Мастер должен работать в выбранной компании. Смена мастера сбрасывает расписание.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /draft/staff - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateStaffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /draft/staff - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	staffID, err := handlers.ParseID(req.StaffID)
	if err != nil {
		h.logger.Warn("PUT /draft/staff - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	engine := h.sessions.Get(r.Context(), userID).Draft
	current := engine.Draft()
	if current.Business == nil {
		h.logger.Warn("PUT /draft/staff - Business not selected: user_id=%s", userID)
		handlers.RespondBadRequest(w, msgBusinessNotSelected)
		return
	}

	member, err := h.catalog.FindStaff(r.Context(), current.Business.ID, staffID)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrStaffNotFound), errors.Is(err, catalog.ErrBusinessNotFound):
			h.logger.Warn("PUT /draft/staff - Staff not found: business_id=%s, staff_id=%s",
				current.Business.ID, staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, catalog.ErrBackend):
			h.logger.Error("PUT /draft/staff - Backend error: staff_id=%s, error=%v", staffID, err)
			handlers.RespondBadGateway(w, msgBackendError)

		default:
			h.logger.Error("PUT /draft/staff - Failed to find staff: staff_id=%s, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if !member.IsActive {
		h.logger.Warn("PUT /draft/staff - Staff inactive: staff_id=%s", staffID)
		handlers.RespondBadRequest(w, msgStaffInactive)
		return
	}

	if !engine.SetStaffFor(current.Business.ID, member.Ref()) {
		h.logger.Warn("PUT /draft/staff - Business changed during lookup: user_id=%s, staff_id=%s", userID, staffID)
		handlers.RespondConflict(w, msgBusinessChanged)
		return
	}

	h.logger.Info("PUT /draft/staff - Staff selected: user_id=%s, staff_id=%s", userID, staffID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDraft(engine.Draft()))
}
