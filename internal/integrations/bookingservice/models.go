package bookingservice

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonCheckout/internal/domain"
)

// LocalDateTime дата и время без часового пояса в формате booking service
// Значение хранится как UTC с тем же настенным временем
type LocalDateTime struct {
	time.Time
}

var localDateTimeLayouts = []string{
	domain.DateTimeFormat,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

func (t LocalDateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(domain.DateTimeFormat))
}

func (t *LocalDateTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("local date-time must be a string: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range localDateTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unsupported local date-time %q", s)
}

// CreateBookingRequest тело запроса POST /api/bookings
type CreateBookingRequest struct {
	StartTime  LocalDateTime `json:"startTime"`
	EndTime    LocalDateTime `json:"endTime"`
	ServiceIDs []int64       `json:"serviceIds"`
}

// Booking модель бронирования из BookingService
type Booking struct {
	ID            int64         `json:"id"`
	SalonID       int64         `json:"salonId"`
	CustomerID    int64         `json:"customerId"`
	StartTime     LocalDateTime `json:"startTime"`
	EndTime       LocalDateTime `json:"endTime"`
	ServiceIDs    []int64       `json:"serviceIds"`
	TotalPrice    float64       `json:"totalPrice"`
	Status        string        `json:"status"`
	PaymentMethod *string       `json:"paymentMethod,omitempty"`
	PaymentStatus *string       `json:"paymentStatus,omitempty"`
}

// ToDomain конвертирует ответ сервиса в доменную модель
func (b *Booking) ToDomain() *domain.Booking {
	result := &domain.Booking{
		ID:            b.ID,
		SalonID:       b.SalonID,
		CustomerID:    b.CustomerID,
		StartTime:     b.StartTime.Time,
		EndTime:       b.EndTime.Time,
		ServiceIDs:    b.ServiceIDs,
		TotalPrice:    b.TotalPrice,
		Status:        domain.BookingStatus(strings.ToUpper(b.Status)),
		PaymentStatus: b.PaymentStatus,
	}
	if b.PaymentMethod != nil {
		if m, ok := domain.ParsePaymentMethod(*b.PaymentMethod); ok {
			result.PaymentMethod = &m
		}
	}
	return result
}

// BookedSlot занятый интервал из GET /api/bookings/slots/salon/{salonId}/date/{date}
type BookedSlot struct {
	StartTime LocalDateTime `json:"startTime"`
	EndTime   LocalDateTime `json:"endTime"`
}
