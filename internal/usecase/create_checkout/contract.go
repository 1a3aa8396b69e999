package create_checkout

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonCheckout/internal/domain"
	"github.com/m04kA/SMC-SalonCheckout/internal/infra/events"
	paymentsModels "github.com/m04kA/SMC-SalonCheckout/internal/service/payments/models"
)

// OfferingServiceClient интерфейс клиента каталога услуг салона
type OfferingServiceClient interface {
	GetSalonServices(ctx context.Context, salonID int64) ([]domain.ServiceOffering, error)
}

// BookingServiceClient интерфейс клиента для BookingService
type BookingServiceClient interface {
	CreateBooking(ctx context.Context, salonID, customerID int64, start, end time.Time, serviceIDs []int64) (*domain.Booking, error)
}

// PaymentDispatcher интерфейс запуска оплаты созданного бронирования
type PaymentDispatcher interface {
	Dispatch(ctx context.Context, req *paymentsModels.DispatchRequest) (*paymentsModels.DispatchResult, error)
}

// EventPublisher интерфейс публикации событий
type EventPublisher interface {
	Publish(ctx context.Context, event *events.CheckoutEvent) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
