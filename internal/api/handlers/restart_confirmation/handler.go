package restart_confirmation

import (
	"context"
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

// Handle POST /api/v1/bookings/{bookingId}/confirmation
// Запускает новый прогон подтверждения с первой попытки и возвращает его итог
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/confirmation - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	confirmation, err := h.service.Restart(context.WithoutCancel(r.Context()), bookingID)
	if err != nil {
		if errors.Is(err, reconciler.ErrInvalidBookingID) {
			handlers.RespondBadRequest(w, msgInvalidBookingID)
			return
		}
		if confirmation == nil {
			h.logger.Error("POST /bookings/{id}/confirmation - Restart failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
			return
		}
		h.logger.Warn("POST /bookings/{id}/confirmation - Run interrupted: booking_id=%d, error=%v", bookingID, err)
	}

	h.logger.Info("POST /bookings/{id}/confirmation - Run finished: booking_id=%d, state=%s, attempt=%d",
		bookingID, confirmation.State, confirmation.Attempt)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewConfirmationResponse(confirmation))
}
