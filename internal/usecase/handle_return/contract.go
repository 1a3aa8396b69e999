package handle_return

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonCheckout/internal/domain"
	"github.com/m04kA/SMC-SalonCheckout/internal/infra/events"
	"github.com/m04kA/SMC-SalonCheckout/internal/integrations/paymentservice"
)

// PaymentVerifier интерфейс проверки возврата с платежного шлюза
type PaymentVerifier interface {
	VerifyRazorpay(ctx context.Context, cb *paymentservice.RazorpayCallback) (*paymentservice.VerificationResult, error)
}

// HandoffRepository интерфейс хранилища записей между шагами оплаты
type HandoffRepository interface {
	Consume(ctx context.Context, kind domain.HandoffKind, bookingID int64, now time.Time) (*domain.HandoffRecord, error)
	Delete(ctx context.Context, kind domain.HandoffKind, bookingID int64) error
}

// Reconciler интерфейс подтверждения бронирования после оплаты
type Reconciler interface {
	Reconcile(ctx context.Context, bookingID int64) (*domain.Confirmation, error)
}

// EventPublisher интерфейс публикации событий
type EventPublisher interface {
	Publish(ctx context.Context, event *events.CheckoutEvent) error
}

// Metrics интерфейс метрик use case
type Metrics interface {
	IncReturnOutcome(source, status string)
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

func (nopMetrics) IncReturnOutcome(source, status string)    {}
func (nopMetrics) IncHandoff(kind, operation, result string) {}
