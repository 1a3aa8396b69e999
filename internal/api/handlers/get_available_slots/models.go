package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonCheckout/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonCheckout/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date     string          `json:"date"`
	SalonID  int64           `json:"salonId"`
	Degraded bool            `json:"degraded"`
	Slots    []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Available       bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime:       slot.StartTime,
			DurationMinutes: slot.DurationMinutes,
			Available:       slot.Available,
		}
	}

	return &AvailableSlotsResponse{
		Date:     resp.Date.Format(domain.DateFormat),
		SalonID:  resp.SalonID,
		Degraded: resp.Degraded,
		Slots:    slots,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(salonID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		SalonID: salonID,
		Date:    date,
	}, nil
}
