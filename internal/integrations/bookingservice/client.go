package bookingservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SalonCheckout/internal/domain"
	"github.com/m04kA/SMC-SalonCheckout/internal/integrations/upstream"
	"github.com/m04kA/SMC-SalonCheckout/pkg/bearer"
)

const serviceName = "booking"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с BookingService
type Client struct {
	baseURL    string
	httpClient *http.Client
	observer   upstream.Observer
	log        Logger
}

// NewClient создает новый экземпляр клиента BookingService
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

// CreateBooking создает бронирование в статусе PENDING
func (c *Client) CreateBooking(ctx context.Context, salonID, customerID int64, start, end time.Time, serviceIDs []int64) (*domain.Booking, error) {
	query := url.Values{}
	query.Set("salonId", strconv.FormatInt(salonID, 10))
	query.Set("customerId", strconv.FormatInt(customerID, 10))
	endpoint := fmt.Sprintf("%s/api/bookings?%s", c.baseURL, query.Encode())

	body, err := json.Marshal(CreateBookingRequest{
		StartTime:  LocalDateTime{start},
		EndTime:    LocalDateTime{end},
		ServiceIDs: serviceIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	bearer.SetAuthorization(req)

	resp, err := upstream.Do(c.httpClient, req, c.observer, serviceName, "create_booking")
	if err != nil {
		c.log.Error("BookingService: create booking salon=%d customer=%d failed: %v", salonID, customerID, err)
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if !upstream.IsSuccess(resp.StatusCode) {
		uerr := upstream.NewError(serviceName, resp)
		c.log.Warn("BookingService: create booking salon=%d customer=%d rejected: %v", salonID, customerID, uerr)
		return nil, fmt.Errorf("%w: %w", ErrRejected, uerr)
	}

	var booking Booking
	if err := json.NewDecoder(resp.Body).Decode(&booking); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if booking.ID <= 0 {
		return nil, fmt.Errorf("%w: booking id missing in response", ErrInvalidResponse)
	}

	return booking.ToDomain(), nil
}

// UpdateStatus меняет статус бронирования (PUT /api/bookings/{id}/status?status=...)
func (c *Client) UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) error {
	endpoint := fmt.Sprintf("%s/api/bookings/%d/status?status=%s", c.baseURL, bookingID, url.QueryEscape(string(status)))

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	bearer.SetAuthorization(req)

	resp, err := upstream.Do(c.httpClient, req, c.observer, serviceName, "update_status")
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch {
	case upstream.IsSuccess(resp.StatusCode):
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %w", ErrBookingNotFound, upstream.NewError(serviceName, resp))
	default:
		return fmt.Errorf("%w: %w", ErrRejected, upstream.NewError(serviceName, resp))
	}
}

// GetBooking получает бронирование по ID
func (c *Client) GetBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	endpoint := fmt.Sprintf("%s/api/bookings/%d", c.baseURL, bookingID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	bearer.SetAuthorization(req)

	resp, err := upstream.Do(c.httpClient, req, c.observer, serviceName, "get_booking")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case upstream.IsSuccess(resp.StatusCode):
		// Продолжаем обработку
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrBookingNotFound
	default:
		return nil, fmt.Errorf("%w: %w", ErrRejected, upstream.NewError(serviceName, resp))
	}

	var booking Booking
	if err := json.NewDecoder(resp.Body).Decode(&booking); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return booking.ToDomain(), nil
}

// GetBookedSlots получает занятые интервалы салона на дату
func (c *Client) GetBookedSlots(ctx context.Context, salonID int64, date time.Time) ([]domain.BookedInterval, error) {
	endpoint := fmt.Sprintf("%s/api/bookings/slots/salon/%d/date/%s", c.baseURL, salonID, date.Format(domain.DateFormat))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	bearer.SetAuthorization(req)

	resp, err := upstream.Do(c.httpClient, req, c.observer, serviceName, "get_booked_slots")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if !upstream.IsSuccess(resp.StatusCode) {
		return nil, fmt.Errorf("%w: %w", ErrRejected, upstream.NewError(serviceName, resp))
	}

	var slots []BookedSlot
	if err := json.NewDecoder(resp.Body).Decode(&slots); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	intervals := make([]domain.BookedInterval, 0, len(slots))
	for _, s := range slots {
		intervals = append(intervals, domain.BookedInterval{Start: s.StartTime.Time, End: s.EndTime.Time})
	}
	return intervals, nil
}
