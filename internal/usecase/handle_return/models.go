package handle_return

import (
	"github.com/m04kA/SMC-SalonCheckout/internal/domain"
	"github.com/m04kA/SMC-SalonCheckout/internal/integrations/paymentservice"
)

// Тексты, которые видит клиент на странице результата оплаты
const (
	MsgNoPaymentInfo        = "No valid payment information found"
	MsgMissingGatewayParams = "Missing required Razorpay parameters"
	MsgVerificationFailed   = "Razorpay payment verification failed"
	MsgPaymentCompleted     = "Payment completed successfully!"
	MsgFailedPrefix         = "Payment processing failed: "
)

// Status итог обработки возврата
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Source откуда взяты данные об оплате
type Source string

const (
	SourceGateway Source = "gateway"
	SourceRoute   Source = "route"
	SourceHandoff Source = "handoff"
	SourceNone    Source = "none"
)

// Request модель запроса возврата клиента после оплаты
type Request struct {
	// Gateway параметры возврата с Razorpay, nil если их нет в запросе
	Gateway *paymentservice.RazorpayCallback
	// BookingID ID бронирования из пути или из query, как пришел
	BookingID string
	// SuccessRoute запрос пришел на маршрут payment-success
	SuccessRoute bool
	// Method способ оплаты из query, используется если нет записи pending_payment
	Method string
}

// Response результат обработки возврата
type Response struct {
	Status    Status
	Source    Source
	Message   string
	BookingID int64
	PaymentID string
	Method    string
	Amount    float64
	// Confirmation итог подтверждения бронирования, nil если оплата не прошла
	Confirmation *domain.Confirmation
}

// BookingConfirmationPending оплата прошла, но бронирование еще не подтверждено
func (r *Response) BookingConfirmationPending() bool {
	return r.Status == StatusSuccess && (r.Confirmation == nil || r.Confirmation.State != domain.ConfirmationConfirmed)
}

// PickupResponse запись об оплате для личного кабинета
type PickupResponse struct {
	BookingID int64
	Method    string
	Amount    float64
	Message   string
}
