package create_checkout

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidTimeSlot возвращается, когда время не совпадает ни с одним слотом
	ErrInvalidTimeSlot = errors.New("invalid time slot")

	// ErrInvalidPaymentMethod возвращается для неизвестного способа оплаты
	ErrInvalidPaymentMethod = errors.New("invalid payment method")

	// ErrServiceNotFound возвращается, когда услуги нет в каталоге салона
	ErrServiceNotFound = errors.New("service not found")

	// ErrCatalogUnavailable возвращается, когда каталог салона не удалось загрузить
	ErrCatalogUnavailable = errors.New("salon catalog unavailable")

	// ErrBookingCreationFailed возвращается, когда BookingService не создал бронирование
	// Текст ошибки сервиса доступен через upstream.MessageOr
	ErrBookingCreationFailed = errors.New("failed to create booking")
)

// PaymentError бронирование создано, но оплату запустить не удалось.
// Бронирование остается в статусе PENDING.
type PaymentError struct {
	BookingID int64
	Err       error
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("booking %d created, payment failed: %v", e.BookingID, e.Err)
}

func (e *PaymentError) Unwrap() error {
	return e.Err
}
