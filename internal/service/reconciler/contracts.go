package reconciler

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonCheckout/internal/domain"
	"github.com/m04kA/SMC-SalonCheckout/internal/infra/events"
)

// BookingServiceClient интерфейс клиента для BookingService
type BookingServiceClient interface {
	UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) error
}

// ConfirmationRepository интерфейс репозитория состояний подтверждения
type ConfirmationRepository interface {
	Upsert(ctx context.Context, c *domain.Confirmation) error
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.Confirmation, error)
}

// EventPublisher интерфейс публикации событий
type EventPublisher interface {
	Publish(ctx context.Context, event *events.CheckoutEvent) error
}

// Metrics интерфейс метрик сервиса
type Metrics interface {
	IncReconcileAttempt(outcome string)
	IncReconcileRun(state string)
}

// SleepFunc ожидание между попытками, должно прерываться при отмене контекста
type SleepFunc func(ctx context.Context, d time.Duration) error

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

func (nopMetrics) IncReconcileAttempt(outcome string) {}
func (nopMetrics) IncReconcileRun(state string)       {}

// sleepContext ждет d или отмены контекста
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
