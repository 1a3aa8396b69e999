package handle_return

import (
	"net/url"

	"github.com/m04kA/SMC-SalonCheckout/internal/api/handlers"
	"github.com/m04kA/SMC-SalonCheckout/internal/integrations/paymentservice"
	handleReturn "github.com/m04kA/SMC-SalonCheckout/internal/usecase/handle_return"
)

// Параметры возврата с Razorpay
const (
	paramPaymentID         = "razorpay_payment_id"
	paramPaymentLinkID     = "razorpay_payment_link_id"
	paramSignature         = "razorpay_signature"
	paramPaymentLinkStatus = "razorpay_payment_link_status"
	paramBookingID         = "bookingId"
	paramMethod            = "method"
)

// ReturnResponse HTTP response model
type ReturnResponse struct {
	Status       string                         `json:"status"`
	Source       string                         `json:"source"`
	Message      string                         `json:"message"`
	BookingID    *int64                         `json:"bookingId,omitempty"`
	PaymentID    *string                        `json:"paymentId,omitempty"`
	Method       *string                        `json:"method,omitempty"`
	Amount       *float64                       `json:"amount,omitempty"`
	Confirmation *handlers.ConfirmationResponse `json:"confirmation,omitempty"`
	// BookingConfirmation "confirmed" или "pending" для успешной оплаты
	BookingConfirmation *string `json:"bookingConfirmation,omitempty"`
}

// ToUseCaseRequest собирает запрос use case из query и ID бронирования из пути
func ToUseCaseRequest(query url.Values, pathBookingID string, successRoute bool) *handleReturn.Request {
	bookingID := query.Get(paramBookingID)
	if bookingID == "" {
		bookingID = pathBookingID
	}

	req := &handleReturn.Request{
		BookingID:    bookingID,
		SuccessRoute: successRoute,
		Method:       query.Get(paramMethod),
	}

	if hasGatewayParams(query) {
		req.Gateway = &paymentservice.RazorpayCallback{
			PaymentID:         query.Get(paramPaymentID),
			PaymentLinkID:     query.Get(paramPaymentLinkID),
			Signature:         query.Get(paramSignature),
			PaymentLinkStatus: query.Get(paramPaymentLinkStatus),
			BookingID:         bookingID,
		}
	}

	return req
}

func hasGatewayParams(query url.Values) bool {
	for _, p := range []string{paramPaymentID, paramPaymentLinkID, paramSignature, paramPaymentLinkStatus} {
		if query.Has(p) {
			return true
		}
	}
	return false
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *handleReturn.Response) *ReturnResponse {
	out := &ReturnResponse{
		Status:       string(resp.Status),
		Source:       string(resp.Source),
		Message:      resp.Message,
		Confirmation: handlers.NewConfirmationResponse(resp.Confirmation),
	}
	if resp.BookingID > 0 {
		out.BookingID = &resp.BookingID
	}
	if resp.PaymentID != "" {
		out.PaymentID = &resp.PaymentID
	}
	if resp.Method != "" {
		out.Method = &resp.Method
	}
	if resp.Amount > 0 {
		out.Amount = &resp.Amount
	}
	if resp.Status == handleReturn.StatusSuccess {
		state := "confirmed"
		if resp.BookingConfirmationPending() {
			state = "pending"
		}
		out.BookingConfirmation = &state
	}
	return out
}
