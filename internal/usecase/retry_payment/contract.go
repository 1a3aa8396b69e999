package retry_payment

import (
	"context"

	"github.com/m04kA/SMC-SalonCheckout/internal/domain"
	paymentsModels "github.com/m04kA/SMC-SalonCheckout/internal/service/payments/models"
)

// BookingServiceClient интерфейс клиента для BookingService
type BookingServiceClient interface {
	GetBooking(ctx context.Context, bookingID int64) (*domain.Booking, error)
}

// OfferingServiceClient интерфейс клиента каталога услуг салона
type OfferingServiceClient interface {
	GetSalonServices(ctx context.Context, salonID int64) ([]domain.ServiceOffering, error)
}

// PaymentDispatcher интерфейс запуска оплаты
type PaymentDispatcher interface {
	Dispatch(ctx context.Context, req *paymentsModels.DispatchRequest) (*paymentsModels.DispatchResult, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
