package offeringservice

import "github.com/m04kA/SMC-SalonCheckout/internal/domain"

// ServiceOffering модель услуги из ServiceOfferingService
type ServiceOffering struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Duration    int     `json:"duration"` // в минутах
	SalonID     int64   `json:"salonId"`
	CategoryID  *int64  `json:"categoryId,omitempty"`
	Image       string  `json:"image,omitempty"`
}

// ToDomain конвертирует услугу в доменную модель
func (s ServiceOffering) ToDomain(salonID int64) domain.ServiceOffering {
	if s.SalonID != 0 {
		salonID = s.SalonID
	}
	return domain.ServiceOffering{
		ID:              s.ID,
		SalonID:         salonID,
		Name:            s.Name,
		Description:     s.Description,
		Price:           s.Price,
		DurationMinutes: s.Duration,
	}
}
