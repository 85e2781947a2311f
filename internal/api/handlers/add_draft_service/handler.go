package add_draft_service

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BookingFlow/internal/api/handlers"
	"github.com/m04kA/SMC-BookingFlow/internal/api/middleware"
	"github.com/m04kA/SMC-BookingFlow/internal/domain"
	"github.com/m04kA/SMC-BookingFlow/internal/service/catalog"
)

const (
	msgMissingUserID       = "отсутствует ID пользователя"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidServiceID    = "некорректный ID услуги"
	msgBusinessNotSelected = "сначала выберите компанию"
	msgServiceNotFound     = "услуга не найдена"
	msgTooManyServices     = "слишком много услуг в одном бронировании"
	msgBackendError        = "сервис каталога временно недоступен"
	msgBusinessChanged     = "компания в черновике изменилась, повторите выбор услуги"
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

// Handle POST /api/v1/draft/services
//
// Повторное добавление уже выбранной услуги ничего не меняет.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /draft/services - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req AddServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /draft/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceID, err := handlers.ParseID(req.ServiceID)
	if err != nil {
		h.logger.Warn("POST /draft/services - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	engine := h.sessions.Get(r.Context(), userID).Draft
	current := engine.Draft()
	if current.Business == nil {
		h.logger.Warn("POST /draft/services - Business not selected: user_id=%s", userID)
		handlers.RespondBadRequest(w, msgBusinessNotSelected)
		return
	}

	if !current.HasService(serviceID) && len(current.Services) >= domain.MaxServicesPerBooking {
		h.logger.Warn("POST /draft/services - Too many services: user_id=%s, count=%d", userID, len(current.Services))
		handlers.RespondBadRequest(w, msgTooManyServices)
		return
	}

	service, err := h.catalog.FindService(r.Context(), current.Business.ID, serviceID)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrServiceNotFound), errors.Is(err, catalog.ErrBusinessNotFound):
			h.logger.Warn("POST /draft/services - Service not found: business_id=%s, service_id=%s",
				current.Business.ID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, catalog.ErrBackend):
			h.logger.Error("POST /draft/services - Backend error: service_id=%s, error=%v", serviceID, err)
			handlers.RespondBadGateway(w, msgBackendError)

		default:
			h.logger.Error("POST /draft/services - Failed to find service: service_id=%s, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if !engine.AddServiceFor(current.Business.ID, *service) {
		h.logger.Warn("POST /draft/services - Business changed during lookup: user_id=%s, service_id=%s", userID, serviceID)
		handlers.RespondConflict(w, msgBusinessChanged)
		return
	}

	h.logger.Info("POST /draft/services - Service added: user_id=%s, service_id=%s", userID, serviceID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDraft(engine.Draft()))
}
