package update_draft_business

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BookingFlow/internal/api/handlers"
	"github.com/m04kA/SMC-BookingFlow/internal/api/middleware"
	"github.com/m04kA/SMC-BookingFlow/internal/service/catalog"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBusinessID  = "некорректный ID компании"
	msgBusinessNotFound   = "компания не найдена"
	msgBackendError       = "сервис каталога временно недоступен"
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

// Handle PUT /api/v1/draft/business
//
// Смена компании сбрасывает мастера, услуги и расписание черновика.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /draft/business - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateBusinessRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /draft/business - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	businessID, err := handlers.ParseID(req.BusinessID)
	if err != nil {
		h.logger.Warn("PUT /draft/business - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	business, err := h.catalog.GetBusiness(r.Context(), businessID)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrBusinessNotFound):
			h.logger.Warn("PUT /draft/business - Business not found: business_id=%s", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, catalog.ErrBackend):
			h.logger.Error("PUT /draft/business - Backend error: business_id=%s, error=%v", businessID, err)
			handlers.RespondBadGateway(w, msgBackendError)

		default:
			h.logger.Error("PUT /draft/business - Failed to get business: business_id=%s, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	engine := h.sessions.Get(r.Context(), userID).Draft
	engine.SetBusiness(business.Ref())

	h.logger.Info("PUT /draft/business - Business selected: user_id=%s, business_id=%s", userID, businessID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDraft(engine.Draft()))
}
