package domain

import (
	"strings"
	"time"
)

// BookingStatus represents the status of a booking in the booking service
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusCancelled BookingStatus = "CANCELLED"
)

// PaymentMethod способ оплаты, выбранный клиентом
type PaymentMethod string

const (
	PaymentMethodRazorpay   PaymentMethod = "RAZORPAY"
	PaymentMethodStripe     PaymentMethod = "STRIPE"
	PaymentMethodPayAtSalon PaymentMethod = "PAY_AT_SALON"
)

// ParsePaymentMethod разбирает способ оплаты без учета регистра
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	m := PaymentMethod(strings.ToUpper(strings.TrimSpace(s)))
	return m, m.IsValid()
}

// IsValid returns true for the supported payment methods
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodRazorpay, PaymentMethodStripe, PaymentMethodPayAtSalon:
		return true
	}
	return false
}

// IsOnline returns true if the method needs a gateway redirect
func (m PaymentMethod) IsOnline() bool {
	return m == PaymentMethodRazorpay || m == PaymentMethodStripe
}

// Label человекочитаемое название способа оплаты, которое видит клиент
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentMethodRazorpay:
		return "Razorpay"
	case PaymentMethodStripe:
		return "Stripe"
	case PaymentMethodPayAtSalon:
		return "PAY_AT_SALON"
	}
	return string(m)
}

// Booking represents a booking as reported by the booking service
type Booking struct {
	ID            int64
	SalonID       int64
	CustomerID    int64
	StartTime     time.Time
	EndTime       time.Time
	ServiceIDs    []int64
	TotalPrice    float64
	Status        BookingStatus
	PaymentMethod *PaymentMethod
	PaymentStatus *string
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsConfirmed returns true if the booking no longer waits for confirmation
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed || b.Status == StatusCompleted
}

// IsActive returns true if the booking occupies its time slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// ServiceOffering услуга салона из каталога
type ServiceOffering struct {
	ID              int64
	SalonID         int64
	Name            string
	Description     string
	Price           float64
	DurationMinutes int
}

// CalculateTotal суммирует цены выбранных услуг по каталогу.
// Идентификаторы, которых нет в каталоге, дают 0.
func CalculateTotal(serviceIDs []int64, catalog []ServiceOffering) float64 {
	prices := make(map[int64]float64, len(catalog))
	for _, s := range catalog {
		prices[s.ID] = s.Price
	}

	var total float64
	for _, id := range serviceIDs {
		total += prices[id]
	}
	return total
}

// TotalDuration суммирует длительность выбранных услуг по каталогу
func TotalDuration(serviceIDs []int64, catalog []ServiceOffering) time.Duration {
	durations := make(map[int64]int, len(catalog))
	for _, s := range catalog {
		durations[s.ID] = s.DurationMinutes
	}

	var minutes int
	for _, id := range serviceIDs {
		minutes += durations[id]
	}
	return time.Duration(minutes) * time.Minute
}

// MissingServices возвращает идентификаторы, которых нет в каталоге
func MissingServices(serviceIDs []int64, catalog []ServiceOffering) []int64 {
	known := make(map[int64]struct{}, len(catalog))
	for _, s := range catalog {
		known[s.ID] = struct{}{}
	}

	var missing []int64
	for _, id := range serviceIDs {
		if _, ok := known[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
