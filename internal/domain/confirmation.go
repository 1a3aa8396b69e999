package domain

import "time"

// ConfirmationState состояние подтверждения бронирования после оплаты
type ConfirmationState string

const (
	ConfirmationNotStarted ConfirmationState = "not_started"
	ConfirmationAttempting ConfirmationState = "attempting"
	ConfirmationConfirmed  ConfirmationState = "confirmed"
	ConfirmationExhausted  ConfirmationState = "exhausted"
)

// IsTerminal returns true if no more attempts will be made in the current run
func (s ConfirmationState) IsTerminal() bool {
	return s == ConfirmationConfirmed || s == ConfirmationExhausted
}

// Confirmation состояние прогона подтверждения бронирования
type Confirmation struct {
	BookingID   int64
	State       ConfirmationState
	Attempt     int
	MaxAttempts int
	LastError   *string
	UpdatedAt   time.Time
}

// NeedsManualRetry returns true when the customer should be offered a manual retry
func (c *Confirmation) NeedsManualRetry() bool {
	return c.State == ConfirmationExhausted
}
