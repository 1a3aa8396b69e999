package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType тип события сценария оплаты
type EventType string

const (
	TypeBookingCreated        EventType = "checkout.booking_created"
	TypePaymentLinkCreated    EventType = "checkout.payment_link_created"
	TypePayAtSalonRegistered  EventType = "checkout.pay_at_salon_registered"
	TypePaymentVerified       EventType = "checkout.payment_verified"
	TypePaymentFailed         EventType = "checkout.payment_failed"
	TypeBookingConfirmed      EventType = "checkout.booking_confirmed"
	TypeConfirmationExhausted EventType = "checkout.confirmation_exhausted"
)

// CheckoutEvent событие, публикуемое в Kafka
type CheckoutEvent struct {
	ID         uuid.UUID `json:"id"`
	Type       EventType `json:"type"`
	BookingID  int64     `json:"booking_id"`
	Method     string    `json:"payment_method,omitempty"`
	Amount     float64   `json:"amount,omitempty"`
	Attempt    int       `json:"attempt,omitempty"`
	Error      string    `json:"error,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewEvent создает событие с новым идентификатором
func NewEvent(eventType EventType, bookingID int64, at time.Time) *CheckoutEvent {
	return &CheckoutEvent{
		ID:         uuid.New(),
		Type:       eventType,
		BookingID:  bookingID,
		OccurredAt: at.UTC(),
	}
}
