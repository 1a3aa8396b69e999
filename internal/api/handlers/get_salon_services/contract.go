package get_salon_services

import (
	"context"

	"github.com/m04kA/SMC-SalonCheckout/internal/domain"
)

type OfferingServiceClient interface {
	GetSalonServicesWithGracefulDegradation(ctx context.Context, salonID int64) ([]domain.ServiceOffering, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
