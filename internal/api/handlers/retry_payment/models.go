package retry_payment

import (
	"github.com/m04kA/SMC-SalonCheckout/internal/domain"
	paymentsModels "github.com/m04kA/SMC-SalonCheckout/internal/service/payments/models"
	retryPayment "github.com/m04kA/SMC-SalonCheckout/internal/usecase/retry_payment"
)

// RetryPaymentRequest HTTP request model
type RetryPaymentRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

// PaymentResponse результат повторного запуска оплаты
type PaymentResponse struct {
	BookingID        int64   `json:"bookingId"`
	Method           string  `json:"paymentMethod"`
	Amount           float64 `json:"amount"`
	RequiresRedirect bool    `json:"requiresRedirect"`
	RedirectURL      *string `json:"redirectUrl,omitempty"`
	Message          *string `json:"message,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RetryPaymentRequest) ToUseCaseRequest(bookingID, customerID int64) *retryPayment.Request {
	method, _ := domain.ParsePaymentMethod(r.PaymentMethod)
	return &retryPayment.Request{
		BookingID:     bookingID,
		CustomerID:    customerID,
		PaymentMethod: method,
	}
}

// FromDispatchResult конвертирует результат запуска оплаты в HTTP response
func FromDispatchResult(res *paymentsModels.DispatchResult) *PaymentResponse {
	out := &PaymentResponse{
		BookingID:        res.BookingID,
		Method:           string(res.Method),
		Amount:           res.Amount,
		RequiresRedirect: res.RequiresRedirect(),
	}
	if res.RedirectURL != "" {
		out.RedirectURL = &res.RedirectURL
	}
	if res.Message != "" {
		out.Message = &res.Message
	}
	return out
}
