package paymentservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/m04kA/SMC-SalonCheckout/internal/domain"
	"github.com/m04kA/SMC-SalonCheckout/internal/integrations/upstream"
	"github.com/m04kA/SMC-SalonCheckout/pkg/bearer"
)

const serviceName = "payment"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с PaymentService
type Client struct {
	baseURL    string
	httpClient *http.Client
	observer   upstream.Observer
	log        Logger
}

// NewClient создает новый экземпляр клиента PaymentService
func NewClient(baseURL string, timeout time.Duration, observer upstream.Observer, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		observer: observer,
		log:      log,
	}
}

// CreatePaymentLink создает ссылку на оплату через платежный шлюз
func (c *Client) CreatePaymentLink(ctx context.Context, method domain.PaymentMethod, req *CreatePaymentLinkRequest) (*PaymentLinkResponse, error) {
	endpoint := fmt.Sprintf("%s/api/payments/create?paymentMethod=%s", c.baseURL, url.QueryEscape(string(method)))

	resp, err := c.postJSON(ctx, endpoint, "create_payment_link", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !upstream.IsSuccess(resp.StatusCode) {
		return nil, fmt.Errorf("%w: %w", ErrRejected, upstream.NewError(serviceName, resp))
	}

	var link PaymentLinkResponse
	if err := json.NewDecoder(resp.Body).Decode(&link); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &link, nil
}

// RegisterPayAtSalon регистрирует оплату в салоне
func (c *Client) RegisterPayAtSalon(ctx context.Context, bookingID int64, amount float64, salonID, customerID int64) (*PayAtSalonResponse, error) {
	endpoint := fmt.Sprintf("%s/api/payments/pay-at-salon", c.baseURL)

	resp, err := c.postJSON(ctx, endpoint, "pay_at_salon", &PayAtSalonRequest{
		BookingID:  bookingID,
		Amount:     int64(math.Round(amount)),
		SalonID:    salonID,
		CustomerID: customerID,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !upstream.IsSuccess(resp.StatusCode) {
		return nil, fmt.Errorf("%w: %w", ErrRejected, upstream.NewError(serviceName, resp))
	}

	// Тело ответа необязательно: достаточно 2xx
	var result PayAtSalonResponse
	body, _ := io.ReadAll(resp.Body)
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &result); err != nil {
			c.log.Warn("PaymentService: pay-at-salon booking=%d returned non-JSON body: %v", bookingID, err)
		}
	}
	if result.BookingID == 0 {
		result.BookingID = bookingID
	}
	result.Success = true

	return &result, nil
}

// VerifyRazorpay передает параметры возврата со шлюза на проверку.
// Ответ 2xx возвращается как есть (в том числе с success=false),
// ответ вне 2xx возвращается как VerificationResult с текстом ошибки сервиса.
// Ошибка возвращается только если ответ не получен или не разобран.
func (c *Client) VerifyRazorpay(ctx context.Context, cb *RazorpayCallback) (*VerificationResult, error) {
	endpoint := fmt.Sprintf("%s/api/payments/proceed-razorpay", c.baseURL)

	resp, err := c.postJSON(ctx, endpoint, "proceed_razorpay", cb)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !upstream.IsSuccess(resp.StatusCode) {
		uerr := upstream.NewGatewayError(serviceName, resp)
		c.log.Warn("PaymentService: razorpay verification booking=%s rejected: %v", cb.BookingID, uerr)
		return &VerificationResult{Success: false, Error: uerr.Message}, nil
	}

	var result VerificationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &result, nil
}

func (c *Client) postJSON(ctx context.Context, endpoint, operation string, payload interface{}) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	bearer.SetAuthorization(req)

	resp, err := upstream.Do(c.httpClient, req, c.observer, serviceName, operation)
	if err != nil {
		c.log.Error("PaymentService: %s failed: %v", operation, err)
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	return resp, nil
}
