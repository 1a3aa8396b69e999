package create_checkout

import (
	"time"

	"github.com/m04kA/SMC-SalonCheckout/internal/domain"
	createCheckout "github.com/m04kA/SMC-SalonCheckout/internal/usecase/create_checkout"
)

// CreateCheckoutRequest HTTP request model
type CreateCheckoutRequest struct {
	SalonID       int64   `json:"salonId"`
	Date          string  `json:"date"`      // "2025-10-15"
	StartTime     string  `json:"startTime"` // "10:30"
	ServiceIDs    []int64 `json:"serviceIds"`
	PaymentMethod string  `json:"paymentMethod"`
}

// CheckoutResponse HTTP response model
type CheckoutResponse struct {
	Booking BookingResponse `json:"booking"`
	Payment PaymentResponse `json:"payment"`
}

// BookingResponse созданное бронирование
type BookingResponse struct {
	ID         int64   `json:"id"`
	SalonID    int64   `json:"salonId"`
	CustomerID int64   `json:"customerId"`
	StartTime  string  `json:"startTime"`
	EndTime    string  `json:"endTime"`
	ServiceIDs []int64 `json:"serviceIds"`
	TotalPrice float64 `json:"totalPrice"`
	Status     string  `json:"status"`
}

// PaymentResponse результат запуска оплаты
type PaymentResponse struct {
	Method           string  `json:"paymentMethod"`
	Amount           float64 `json:"amount"`
	RequiresRedirect bool    `json:"requiresRedirect"`
	RedirectURL      *string `json:"redirectUrl,omitempty"`
	Message          *string `json:"message,omitempty"`
}

// PaymentFailedResponse бронирование создано, оплата не запущена
type PaymentFailedResponse struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	BookingID int64  `json:"bookingId"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateCheckoutRequest) ToUseCaseRequest(customerID int64) (*createCheckout.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	method, _ := domain.ParsePaymentMethod(r.PaymentMethod)

	return &createCheckout.Request{
		SalonID:       r.SalonID,
		CustomerID:    customerID,
		Date:          date,
		StartTime:     r.StartTime,
		ServiceIDs:    r.ServiceIDs,
		PaymentMethod: method,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createCheckout.Response) *CheckoutResponse {
	b := resp.Booking
	p := resp.Payment

	out := &CheckoutResponse{
		Booking: BookingResponse{
			ID:         b.ID,
			SalonID:    b.SalonID,
			CustomerID: b.CustomerID,
			StartTime:  b.StartTime.Format(domain.DateTimeFormat),
			EndTime:    b.EndTime.Format(domain.DateTimeFormat),
			ServiceIDs: b.ServiceIDs,
			TotalPrice: b.TotalPrice,
			Status:     string(b.Status),
		},
		Payment: PaymentResponse{
			Method:           string(p.Method),
			Amount:           p.Amount,
			RequiresRedirect: p.RequiresRedirect(),
		},
	}
	if p.RedirectURL != "" {
		out.Payment.RedirectURL = &p.RedirectURL
	}
	if p.Message != "" {
		out.Payment.Message = &p.Message
	}
	return out
}
