package get_payment_success

import (
	"context"

	handleReturn "github.com/m04kA/SMC-SalonCheckout/internal/usecase/handle_return"
)

type PickupUseCase interface {
	Pickup(ctx context.Context, bookingID int64) (*handleReturn.PickupResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
