package get_confirmation

import (
	"context"

	"github.com/m04kA/SMC-SalonCheckout/internal/domain"
)

type ConfirmationService interface {
	Get(ctx context.Context, bookingID int64) (*domain.Confirmation, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
