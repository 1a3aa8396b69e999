package models

import "github.com/m04kA/SMC-SalonCheckout/internal/domain"

// DispatchRequest данные для запуска оплаты созданного бронирования
type DispatchRequest struct {
	BookingID  int64
	SalonID    int64
	CustomerID int64
	Amount     float64
	Method     domain.PaymentMethod
}

// DispatchResult результат запуска оплаты
// Для онлайн-оплаты RedirectURL содержит ссылку на платежный шлюз, для оплаты в салоне он пуст
type DispatchResult struct {
	BookingID   int64
	Method      domain.PaymentMethod
	Amount      float64
	RedirectURL string
	Message     string
}

// RequiresRedirect нужно ли отправить клиента на платежный шлюз
func (r *DispatchResult) RequiresRedirect() bool {
	return r.RedirectURL != ""
}
