package create_checkout

import (
	"fmt"

	"github.com/m04kA/SMC-SalonCheckout/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if !domain.IsValidTimeSlot(req.StartTime) {
		return fmt.Errorf("%w: %q", ErrInvalidTimeSlot, req.StartTime)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}

	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: service id must be positive", ErrInvalidInput)
		}
	}

	if !req.PaymentMethod.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, req.PaymentMethod)
	}

	return nil
}

// validateServicesInCatalog проверяет, что все выбранные услуги есть в каталоге салона
func validateServicesInCatalog(serviceIDs []int64, catalog []domain.ServiceOffering) error {
	if missing := domain.MissingServices(serviceIDs, catalog); len(missing) > 0 {
		return fmt.Errorf("%w: %v", ErrServiceNotFound, missing)
	}
	return nil
}
