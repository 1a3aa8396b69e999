package get_payment_success

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonCheckout/internal/api/handlers"
	handleReturn "github.com/m04kA/SMC-SalonCheckout/internal/usecase/handle_return"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNothingToPickUp  = "нет новых данных об оплате"
)

// PaymentSuccessResponse HTTP response model
type PaymentSuccessResponse struct {
	BookingID     int64   `json:"bookingId"`
	PaymentMethod string  `json:"paymentMethod"`
	Amount        float64 `json:"amount"`
	Message       string  `json:"message"`
}

type Handler struct {
	useCase PickupUseCase
	logger  Logger
}

func NewHandler(useCase PickupUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}/payment-success
// Запись отдается один раз, повторный запрос получает 404
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("GET /bookings/{id}/payment-success - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.useCase.Pickup(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, handleReturn.ErrNothingToPickUp):
			handlers.RespondNotFound(w, msgNothingToPickUp)
		case errors.Is(err, handleReturn.ErrInvalidBookingID):
			handlers.RespondBadRequest(w, msgInvalidBookingID)
		default:
			h.logger.Error("GET /bookings/{id}/payment-success - Failed to pick up: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id}/payment-success - Picked up: booking_id=%d, method=%s", bookingID, result.Method)
	handlers.RespondJSON(w, http.StatusOK, PaymentSuccessResponse{
		BookingID:     result.BookingID,
		PaymentMethod: result.Method,
		Amount:        result.Amount,
		Message:       result.Message,
	})
}
