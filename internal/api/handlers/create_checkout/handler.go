package create_checkout

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonCheckout/internal/api/handlers"
	"github.com/m04kA/SMC-SalonCheckout/internal/api/middleware"
	"github.com/m04kA/SMC-SalonCheckout/internal/integrations/upstream"
	"github.com/m04kA/SMC-SalonCheckout/internal/service/payments"
	createCheckout "github.com/m04kA/SMC-SalonCheckout/internal/usecase/create_checkout"
)

const (
	msgMissingUserID         = "не удалось определить пользователя"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput          = "некорректные данные бронирования"
	msgInvalidTimeSlot       = "некорректный временной слот"
	msgInvalidPaymentMethod  = "неизвестный способ оплаты"
	msgServiceNotFound       = "услуга не найдена в каталоге салона"
	msgCatalogUnavailable    = "каталог салона недоступен"
	msgBookingFailed         = "Failed to create booking"
	msgPaymentLinkMissing    = "payment link not generated"
	msgPaymentSetupFailed    = "Failed to setup payment"
	msgUnsupportedPayment    = "способ оплаты не поддерживается"
	msgPendingPaymentNotSave = "не удалось сохранить данные оплаты, попробуйте еще раз"
)

type Handler struct {
	useCase CreateCheckoutUseCase
	logger  Logger
}

func NewHandler(useCase CreateCheckoutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/checkout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /checkout - Missing user ID in context")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateCheckoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /checkout - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /checkout - Invalid date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.respondError(w, err, customerID, req.SalonID)
		return
	}

	h.logger.Info("POST /checkout - Checkout started: booking_id=%d, customer_id=%d, method=%s, redirect=%t",
		result.Booking.ID, customerID, result.Payment.Method, result.Payment.RequiresRedirect())
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func (h *Handler) respondError(w http.ResponseWriter, err error, customerID, salonID int64) {
	var paymentErr *createCheckout.PaymentError

	switch {
	case errors.Is(err, createCheckout.ErrInvalidTimeSlot):
		h.logger.Warn("POST /checkout - Invalid time slot: customer_id=%d, salon_id=%d", customerID, salonID)
		handlers.RespondBadRequest(w, msgInvalidTimeSlot)

	case errors.Is(err, createCheckout.ErrInvalidPaymentMethod):
		h.logger.Warn("POST /checkout - Invalid payment method: customer_id=%d", customerID)
		handlers.RespondBadRequest(w, msgInvalidPaymentMethod)

	case errors.Is(err, createCheckout.ErrInvalidInput):
		h.logger.Warn("POST /checkout - Invalid input: customer_id=%d, error=%v", customerID, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, createCheckout.ErrServiceNotFound):
		h.logger.Warn("POST /checkout - Service not found: salon_id=%d, error=%v", salonID, err)
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, createCheckout.ErrCatalogUnavailable):
		h.logger.Error("POST /checkout - Catalog unavailable: salon_id=%d, error=%v", salonID, err)
		handlers.RespondBadGateway(w, msgCatalogUnavailable)

	case errors.Is(err, createCheckout.ErrBookingCreationFailed):
		h.logger.Error("POST /checkout - Booking creation failed: customer_id=%d, salon_id=%d, error=%v", customerID, salonID, err)
		handlers.RespondBadGateway(w, upstream.MessageOr(err, msgBookingFailed))

	case errors.As(err, &paymentErr):
		h.logger.Error("POST /checkout - Payment failed: booking_id=%d, error=%v", paymentErr.BookingID, err)
		status, message := paymentFailure(err)
		handlers.RespondJSON(w, status, PaymentFailedResponse{
			Code:      status,
			Message:   message,
			BookingID: paymentErr.BookingID,
		})

	default:
		h.logger.Error("POST /checkout - Failed to create checkout: customer_id=%d, salon_id=%d, error=%v", customerID, salonID, err)
		handlers.RespondInternalError(w)
	}
}

// paymentFailure выбирает статус и текст ответа для ошибки оплаты
func paymentFailure(err error) (int, string) {
	switch {
	case errors.Is(err, payments.ErrPaymentLinkMissing):
		return http.StatusBadGateway, msgPaymentLinkMissing
	case errors.Is(err, payments.ErrUnsupportedMethod):
		return http.StatusBadRequest, msgUnsupportedPayment
	case errors.Is(err, payments.ErrHandoffFailed):
		return http.StatusInternalServerError, msgPendingPaymentNotSave
	default:
		return http.StatusBadGateway, upstream.MessageOr(err, msgPaymentSetupFailed)
	}
}
