package retry_payment

import (
	"fmt"

	"github.com/m04kA/SMC-SalonCheckout/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if !req.PaymentMethod.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, req.PaymentMethod)
	}

	return nil
}

// validateBooking проверяет, что бронирование можно оплатить повторно
func validateBooking(booking *domain.Booking, customerID int64) error {
	if booking.CustomerID != customerID {
		return ErrAccessDenied
	}

	if booking.IsCancelled() {
		return ErrBookingCancelled
	}

	if booking.PaymentStatus != nil && *booking.PaymentStatus == paymentStatusCompleted {
		return ErrAlreadyPaid
	}

	return nil
}
