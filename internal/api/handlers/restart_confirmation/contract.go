package restart_confirmation

import (
	"context"

	"github.com/m04kA/SMC-SalonCheckout/internal/domain"
)

type ConfirmationService interface {
	Restart(ctx context.Context, bookingID int64) (*domain.Confirmation, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
