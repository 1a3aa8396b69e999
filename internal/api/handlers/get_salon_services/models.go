package get_salon_services

import "github.com/m04kA/SMC-SalonCheckout/internal/domain"

// ServiceResponse услуга салона
type ServiceResponse struct {
	ID              int64   `json:"id"`
	SalonID         int64   `json:"salonId"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// SalonServicesResponse HTTP response model
type SalonServicesResponse struct {
	SalonID  int64             `json:"salonId"`
	Services []ServiceResponse `json:"services"`
}

// FromDomain конвертирует каталог салона в HTTP response
func FromDomain(salonID int64, services []domain.ServiceOffering) *SalonServicesResponse {
	out := make([]ServiceResponse, len(services))
	for i, s := range services {
		out[i] = ServiceResponse{
			ID:              s.ID,
			SalonID:         s.SalonID,
			Name:            s.Name,
			Description:     s.Description,
			Price:           s.Price,
			DurationMinutes: s.DurationMinutes,
		}
	}
	return &SalonServicesResponse{
		SalonID:  salonID,
		Services: out,
	}
}
