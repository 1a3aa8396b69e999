package get_salon_services

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonCheckout/internal/api/handlers"
)

const (
	msgInvalidSalonID     = "некорректный ID салона"
	msgCatalogUnavailable = "каталог салона недоступен"
)

type Handler struct {
	client OfferingServiceClient
	logger Logger
}

func NewHandler(client OfferingServiceClient, logger Logger) *Handler {
	return &Handler{
		client: client,
		logger: logger,
	}
}

// Handle GET /api/v1/salons/{salonId}/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	salonID, err := strconv.ParseInt(mux.Vars(r)["salonId"], 10, 64)
	if err != nil || salonID <= 0 {
		h.logger.Warn("GET /salons/{id}/services - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	services, err := h.client.GetSalonServicesWithGracefulDegradation(r.Context(), salonID)
	if err != nil {
		handlers.RespondBadGateway(w, msgCatalogUnavailable)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromDomain(salonID, services))
}
