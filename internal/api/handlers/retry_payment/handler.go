package retry_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonCheckout/internal/api/handlers"
	"github.com/m04kA/SMC-SalonCheckout/internal/api/middleware"
	"github.com/m04kA/SMC-SalonCheckout/internal/integrations/upstream"
	"github.com/m04kA/SMC-SalonCheckout/internal/service/payments"
	retryPayment "github.com/m04kA/SMC-SalonCheckout/internal/usecase/retry_payment"
)

const (
	msgMissingUserID         = "не удалось определить пользователя"
	msgInvalidBookingID      = "некорректный ID бронирования"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidPaymentMethod  = "неизвестный способ оплаты"
	msgBookingNotFound       = "бронирование не найдено"
	msgAccessDenied          = "доступ к бронированию запрещен"
	msgBookingCancelled      = "бронирование отменено"
	msgAlreadyPaid           = "бронирование уже оплачено"
	msgInvalidAmount         = "не удалось определить сумму к оплате"
	msgUnsupportedPayment    = "способ оплаты не поддерживается"
	msgPaymentLinkMissing    = "payment link not generated"
	msgPaymentSetupFailed    = "Failed to setup payment"
	msgPendingPaymentNotSave = "не удалось сохранить данные оплаты, попробуйте еще раз"
)

type Handler struct {
	useCase RetryPaymentUseCase
	logger  Logger
}

func NewHandler(useCase RetryPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/payment/retry
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/payment/retry - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/payment/retry - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req RetryPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/payment/retry - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID, customerID))
	if err != nil {
		h.respondError(w, err, bookingID)
		return
	}

	h.logger.Info("POST /bookings/{id}/payment/retry - Payment restarted: booking_id=%d, method=%s, redirect=%t",
		bookingID, result.Method, result.RequiresRedirect())
	handlers.RespondJSON(w, http.StatusOK, FromDispatchResult(result))
}

func (h *Handler) respondError(w http.ResponseWriter, err error, bookingID int64) {
	switch {
	case errors.Is(err, retryPayment.ErrInvalidPaymentMethod):
		handlers.RespondBadRequest(w, msgInvalidPaymentMethod)
	case errors.Is(err, retryPayment.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidBookingID)
	case errors.Is(err, retryPayment.ErrBookingNotFound):
		handlers.RespondNotFound(w, msgBookingNotFound)
	case errors.Is(err, retryPayment.ErrAccessDenied):
		handlers.RespondForbidden(w, msgAccessDenied)
	case errors.Is(err, retryPayment.ErrBookingCancelled):
		handlers.RespondError(w, http.StatusConflict, msgBookingCancelled)
	case errors.Is(err, retryPayment.ErrAlreadyPaid):
		handlers.RespondError(w, http.StatusConflict, msgAlreadyPaid)
	case errors.Is(err, retryPayment.ErrInvalidAmount):
		handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidAmount)
	case errors.Is(err, payments.ErrUnsupportedMethod):
		handlers.RespondBadRequest(w, msgUnsupportedPayment)
	case errors.Is(err, payments.ErrPaymentLinkMissing):
		h.logger.Error("POST /bookings/{id}/payment/retry - Payment link missing: booking_id=%d", bookingID)
		handlers.RespondBadGateway(w, msgPaymentLinkMissing)
	case errors.Is(err, payments.ErrHandoffFailed):
		h.logger.Error("POST /bookings/{id}/payment/retry - Handoff failed: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondError(w, http.StatusInternalServerError, msgPendingPaymentNotSave)
	case errors.Is(err, retryPayment.ErrInternal):
		h.logger.Error("POST /bookings/{id}/payment/retry - Internal error: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
	default:
		h.logger.Error("POST /bookings/{id}/payment/retry - Payment setup failed: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondBadGateway(w, upstream.MessageOr(err, msgPaymentSetupFailed))
	}
}
