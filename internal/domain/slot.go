package domain

import (
	"fmt"
	"time"
)

// GenerateTimeSlots returns the bookable slot starts of a day: every 30 minutes
// from 09:00 up to and including 20:30
func GenerateTimeSlots() []string {
	slots := make([]string, 0, (LastSlotHour-FirstSlotHour+1)*(60/SlotDurationMinutes))
	for hour := FirstSlotHour; hour <= LastSlotHour; hour++ {
		for minute := 0; minute < 60; minute += SlotDurationMinutes {
			slots = append(slots, fmt.Sprintf("%02d:%02d", hour, minute))
		}
	}
	return slots
}

// IsValidTimeSlot returns true if s is one of GenerateTimeSlots
func IsValidTimeSlot(s string) bool {
	t, err := time.Parse(TimeFormat, s)
	if err != nil || t.Format(TimeFormat) != s {
		return false
	}
	return t.Hour() >= FirstSlotHour && t.Hour() <= LastSlotHour && t.Minute()%SlotDurationMinutes == 0
}

// CombineDateAndSlot builds the local start time from a date and an HH:MM slot
func CombineDateAndSlot(date time.Time, slot string) (time.Time, error) {
	t, err := time.Parse(TimeFormat, slot)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}

// BookedInterval занятый интервал времени
type BookedInterval struct {
	Start time.Time
	End   time.Time
}

// AvailableSlot represents a time slot shown to the customer
type AvailableSlot struct {
	StartTime       string
	DurationMinutes int
	Available       bool
}

// Overlaps returns true if the slot [start, start+duration) intersects the interval.
// A zero-length interval occupies the slot it starts in.
func (i BookedInterval) Overlaps(slotStart time.Time, duration time.Duration) bool {
	slotEnd := slotStart.Add(duration)
	if !i.End.After(i.Start) {
		return !i.Start.Before(slotStart) && i.Start.Before(slotEnd)
	}
	return i.Start.Before(slotEnd) && i.End.After(slotStart)
}
