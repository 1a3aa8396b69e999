package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonCheckout/internal/domain"
)

// buildSlots строит слоты дня и помечает занятые
// Для сегодняшней даты слоты, начало которых уже прошло, не возвращаются
func buildSlots(date time.Time, now time.Time, booked []domain.BookedInterval) ([]domain.AvailableSlot, error) {
	duration := time.Duration(domain.SlotDurationMinutes) * time.Minute
	today := isSameDay(date, now)

	result := make([]domain.AvailableSlot, 0)
	for _, slot := range domain.GenerateTimeSlots() {
		start, err := domain.CombineDateAndSlot(date, slot)
		if err != nil {
			return nil, err
		}

		if today && start.Before(now) {
			continue
		}

		result = append(result, domain.AvailableSlot{
			StartTime:       slot,
			DurationMinutes: domain.SlotDurationMinutes,
			Available:       !isBooked(start, duration, booked),
		})
	}

	return result, nil
}

// isBooked проверяет, пересекается ли слот хотя бы с одним занятым интервалом
// Интервалы, которые только граничат со слотом, пересечением не считаются
func isBooked(slotStart time.Time, duration time.Duration, booked []domain.BookedInterval) bool {
	for _, interval := range booked {
		if interval.Overlaps(slotStart, duration) {
			return true
		}
	}
	return false
}

// wallClock переносит местное время в UTC без сдвига, в той же шкале, что и даты запроса
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
