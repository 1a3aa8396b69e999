package domain

import "time"

// Time format constants
const (
	TimeFormat     = "15:04"               // HH:MM
	DateFormat     = "2006-01-02"          // YYYY-MM-DD
	DateTimeFormat = "2006-01-02T15:04:05" // локальное время, формат booking service
)

// Slot grid
const (
	FirstSlotHour       = 9
	LastSlotHour        = 20
	SlotDurationMinutes = 30
)

// Reconciliation and handoff defaults
const (
	DefaultConfirmationAttempts = 3
	DefaultConfirmationDelay    = time.Second
	DefaultHandoffTTL           = 30 * time.Minute
)
