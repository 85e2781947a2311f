package get_business_staff

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BookingFlow/internal/api/handlers"
	"github.com/m04kA/SMC-BookingFlow/internal/service/catalog"
)

const (
	msgInvalidBusinessID = "некорректный ID компании"
	msgBusinessNotFound  = "компания не найдена"
	msgBackendError      = "сервис каталога временно недоступен"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/staff
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := handlers.ParseID(mux.Vars(r)["businessId"])
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/staff - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	staff, err := h.service.ListStaff(r.Context(), businessID)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrBusinessNotFound):
			h.logger.Warn("GET /businesses/{id}/staff - Business not found: business_id=%s", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, catalog.ErrBackend):
			h.logger.Error("GET /businesses/{id}/staff - Backend error: business_id=%s, error=%v", businessID, err)
			handlers.RespondBadGateway(w, msgBackendError)

		default:
			h.logger.Error("GET /businesses/{id}/staff - Failed to list staff: business_id=%s, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/staff - Staff retrieved: business_id=%s, count=%d", businessID, len(staff))
	handlers.RespondJSON(w, http.StatusOK, FromDomain(staff))
}
