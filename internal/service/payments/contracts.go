package payments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonCheckout/internal/domain"
	"github.com/m04kA/SMC-SalonCheckout/internal/infra/events"
	"github.com/m04kA/SMC-SalonCheckout/internal/integrations/paymentservice"
)

// PaymentServiceClient интерфейс клиента для PaymentService
type PaymentServiceClient interface {
	CreatePaymentLink(ctx context.Context, method domain.PaymentMethod, req *paymentservice.CreatePaymentLinkRequest) (*paymentservice.PaymentLinkResponse, error)
	RegisterPayAtSalon(ctx context.Context, bookingID int64, amount float64, salonID, customerID int64) (*paymentservice.PayAtSalonResponse, error)
}

// HandoffRepository интерфейс хранилища handoff-записей
type HandoffRepository interface {
	Save(ctx context.Context, record *domain.HandoffRecord) error
}

// EventPublisher интерфейс публикации событий
type EventPublisher interface {
	Publish(ctx context.Context, event *events.CheckoutEvent) error
}

// Metrics интерфейс метрик сервиса
type Metrics interface {
	IncPaymentDispatch(method, result string)
	IncPaymentLinkField(field string)
	IncHandoff(kind, operation, result string)
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

type nopMetrics struct{}

func (nopMetrics) IncPaymentDispatch(method, result string)  {}
func (nopMetrics) IncPaymentLinkField(field string)          {}
func (nopMetrics) IncHandoff(kind, operation, result string) {}
