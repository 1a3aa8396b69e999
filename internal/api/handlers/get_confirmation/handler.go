package get_confirmation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonCheckout/internal/api/handlers"
	"github.com/m04kA/SMC-SalonCheckout/internal/service/reconciler"
)

const msgInvalidBookingID = "некорректный ID бронирования"

type Handler struct {
	service ConfirmationService
	logger  Logger
}

func NewHandler(service ConfirmationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}/confirmation
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /bookings/{id}/confirmation - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	confirmation, err := h.service.Get(r.Context(), bookingID)
	if err != nil {
		if errors.Is(err, reconciler.ErrInvalidBookingID) {
			handlers.RespondBadRequest(w, msgInvalidBookingID)
			return
		}
		h.logger.Error("GET /bookings/{id}/confirmation - Failed to get confirmation: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.NewConfirmationResponse(confirmation))
}
