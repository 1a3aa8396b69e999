package retry_payment

import (
	"github.com/m04kA/SMC-SalonCheckout/internal/domain"
)

// paymentStatusCompleted статус оплаты в BookingService после завершенной оплаты
const paymentStatusCompleted = "COMPLETED"

// Request модель запроса на повторную оплату
type Request struct {
	BookingID     int64
	CustomerID    int64
	PaymentMethod domain.PaymentMethod
}
