package paymentservice

import "strings"

// Поля ответа, из которых читается ссылка на оплату
const (
	FieldPaymentLinkURL = "payment_link_url"
	FieldPaymentLink    = "paymentLink"
	FieldURL            = "url"
)

// CreatePaymentLinkRequest тело запроса POST /api/payments/create
type CreatePaymentLinkRequest struct {
	ID         int64   `json:"id"`
	SalonID    int64   `json:"salonId"`
	CustomerID int64   `json:"customerId"`
	TotalPrice float64 `json:"totalPrice"`
}

// PaymentLinkResponse ответ на создание ссылки на оплату
// Каноническое поле payment_link_url, paymentLink и url поддерживаются для старых версий сервиса
type PaymentLinkResponse struct {
	PaymentLinkURL string `json:"payment_link_url"`
	PaymentLinkID  string `json:"payment_link_id"`
	PaymentLink    string `json:"paymentLink"`
	URL            string `json:"url"`
}

// RedirectURL возвращает первую непустую ссылку и имя поля, из которого она взята
func (r *PaymentLinkResponse) RedirectURL() (string, string) {
	candidates := []struct {
		field string
		value string
	}{
		{FieldPaymentLinkURL, r.PaymentLinkURL},
		{FieldPaymentLink, r.PaymentLink},
		{FieldURL, r.URL},
	}
	for _, c := range candidates {
		if v := strings.TrimSpace(c.value); v != "" {
			return v, c.field
		}
	}
	return "", ""
}

// PayAtSalonRequest тело запроса POST /api/payments/pay-at-salon
// Сервис ожидает целые значения, поэтому сумма передается в целых единицах валюты
type PayAtSalonRequest struct {
	BookingID  int64 `json:"bookingId"`
	Amount     int64 `json:"amount"`
	SalonID    int64 `json:"salonId"`
	CustomerID int64 `json:"customerId"`
}

// PayAtSalonResponse ответ на регистрацию оплаты в салоне
type PayAtSalonResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	BookingID int64  `json:"bookingId"`
}

// RazorpayCallback параметры возврата со страницы Razorpay
type RazorpayCallback struct {
	PaymentID         string `json:"razorpay_payment_id"`
	PaymentLinkID     string `json:"razorpay_payment_link_id"`
	Signature         string `json:"razorpay_signature"`
	PaymentLinkStatus string `json:"razorpay_payment_link_status"`
	BookingID         string `json:"bookingId"`
}

// VerificationResult ответ POST /api/payments/proceed-razorpay
type VerificationResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	PaymentID string `json:"paymentId"`
	BookingID int64  `json:"bookingId"`
	Error     string `json:"error"`
}
