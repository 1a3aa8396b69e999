package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonCheckout/internal/domain"
)

// BookingServiceClient интерфейс клиента для BookingService
type BookingServiceClient interface {
	// GetBookedSlots получает занятые интервалы салона на дату
	GetBookedSlots(ctx context.Context, salonID int64, date time.Time) ([]domain.BookedInterval, error)
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
