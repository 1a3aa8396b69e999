package handlers

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonCheckout/internal/domain"
)

// ConfirmationResponse состояние подтверждения бронирования
type ConfirmationResponse struct {
	BookingID   int64   `json:"bookingId"`
	State       string  `json:"state"`
	Attempt     int     `json:"attempt"`
	MaxAttempts int     `json:"maxAttempts"`
	LastError   *string `json:"lastError,omitempty"`
	UpdatedAt   *string `json:"updatedAt,omitempty"`
	// RetryHint подсказка для ручного перезапуска, если попытки исчерпаны
	RetryHint *string `json:"retryHint,omitempty"`
}

// NewConfirmationResponse конвертирует доменную модель в HTTP ответ
func NewConfirmationResponse(c *domain.Confirmation) *ConfirmationResponse {
	if c == nil {
		return nil
	}

	resp := &ConfirmationResponse{
		BookingID:   c.BookingID,
		State:       string(c.State),
		Attempt:     c.Attempt,
		MaxAttempts: c.MaxAttempts,
		LastError:   c.LastError,
	}
	if !c.UpdatedAt.IsZero() {
		updatedAt := c.UpdatedAt.UTC().Format(time.RFC3339)
		resp.UpdatedAt = &updatedAt
	}
	if c.NeedsManualRetry() {
		hint := fmt.Sprintf("POST /api/v1/bookings/%d/confirmation", c.BookingID)
		resp.RetryHint = &hint
	}
	return resp
}
