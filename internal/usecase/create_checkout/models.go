package create_checkout

import (
	"time"

	"github.com/m04kA/SMC-SalonCheckout/internal/domain"
	paymentsModels "github.com/m04kA/SMC-SalonCheckout/internal/service/payments/models"
)

// Request модель запроса на оформление бронирования с оплатой
type Request struct {
	SalonID       int64                // ID салона
	CustomerID    int64                // ID клиента (из X-User-ID)
	Date          time.Time            // Дата визита (без времени)
	StartTime     string               // Слот "HH:MM"
	ServiceIDs    []int64              // Выбранные услуги
	PaymentMethod domain.PaymentMethod // Способ оплаты
}

// Response модель ответа
type Response struct {
	Booking *domain.Booking
	Payment *paymentsModels.DispatchResult
}
