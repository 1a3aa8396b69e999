package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonCheckout/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	SalonID int64     // ID салона
	Date    time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком слотов
type Response struct {
	Date    time.Time              // Дата, на которую запрашивались слоты
	SalonID int64                  // ID салона
	Slots   []domain.AvailableSlot // Слоты дня, занятые помечены Available=false
	// Degraded занятость не удалось получить, все слоты показаны свободными
	Degraded bool
}
