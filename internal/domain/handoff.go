package domain

import "time"

// HandoffKind тип записи для передачи состояния между шагами оплаты
type HandoffKind string

const (
	// HandoffPendingPayment создается перед переходом на страницу платежного шлюза
	HandoffPendingPayment HandoffKind = "pending_payment"
	// HandoffPaymentSuccess создается после регистрации оплаты в салоне
	HandoffPaymentSuccess HandoffKind = "payment_success"
)

// IsValid returns true for known handoff kinds
func (k HandoffKind) IsValid() bool {
	return k == HandoffPendingPayment || k == HandoffPaymentSuccess
}

// HandoffRecord запись, которую читает следующий шаг сценария оплаты.
// Ключ записи: (Kind, BookingID). Запись читается один раз.
type HandoffRecord struct {
	Kind      HandoffKind
	BookingID int64
	Method    PaymentMethod
	Amount    float64
	Message   string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// IsExpired returns true if the record TTL has passed
func (r *HandoffRecord) IsExpired(now time.Time) bool {
	return !r.ExpiresAt.IsZero() && !now.Before(r.ExpiresAt)
}
