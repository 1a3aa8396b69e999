package handle_return

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonCheckout/internal/api/handlers"
	handleReturn "github.com/m04kA/SMC-SalonCheckout/internal/usecase/handle_return"
)

type Handler struct {
	useCase HandleReturnUseCase
	logger  Logger
}

func NewHandler(useCase HandleReturnUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/payments/return
// Query params: razorpay_* (возврат с Razorpay), bookingId
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, ToUseCaseRequest(r.URL.Query(), "", false), "GET /payments/return")
}

// HandleSuccessRoute GET /api/v1/payment-success/{bookingId}
// Query params: method (необязательный)
func (h *Handler) HandleSuccessRoute(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]
	h.handle(w, r, ToUseCaseRequest(r.URL.Query(), bookingID, true), "GET /payment-success/{id}")
}

// Итог оплаты всегда возвращается со статусом 200, успех или отказ передается в поле status
func (h *Handler) handle(w http.ResponseWriter, r *http.Request, req *handleReturn.Request, route string) {
	result := h.useCase.Execute(r.Context(), req)

	if result.Status == handleReturn.StatusSuccess {
		h.logger.Info("%s - Payment processed: booking_id=%d, source=%s, method=%s, confirmation_pending=%t",
			route, result.BookingID, result.Source, result.Method, result.BookingConfirmationPending())
	} else {
		h.logger.Warn("%s - Payment failed: booking_id=%d, source=%s, message=%s",
			route, result.BookingID, result.Source, result.Message)
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
