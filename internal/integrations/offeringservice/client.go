package offeringservice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonCheckout/internal/domain"
	"github.com/m04kA/SMC-SalonCheckout/internal/integrations/upstream"
	"github.com/m04kA/SMC-SalonCheckout/pkg/bearer"
)

const serviceName = "offering"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с ServiceOfferingService
type Client struct {
	baseURL    string
	httpClient *http.Client
	observer   upstream.Observer
	log        Logger
}

// NewClient создает новый экземпляр клиента ServiceOfferingService
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

// GetSalonServices получает каталог услуг салона
func (c *Client) GetSalonServices(ctx context.Context, salonID int64) ([]domain.ServiceOffering, error) {
	url := fmt.Sprintf("%s/api/service-offering/salon/%d", c.baseURL, salonID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	bearer.SetAuthorization(req)

	resp, err := upstream.Do(c.httpClient, req, c.observer, serviceName, "get_salon_services")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case upstream.IsSuccess(resp.StatusCode):
		// Продолжаем обработку
	case resp.StatusCode == http.StatusNotFound:
		// Салон без услуг: пустой каталог
		return []domain.ServiceOffering{}, nil
	default:
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, upstream.NewError(serviceName, resp))
	}

	// Парсим ответ
	var services []ServiceOffering
	if err := json.NewDecoder(resp.Body).Decode(&services); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	result := make([]domain.ServiceOffering, 0, len(services))
	for _, s := range services {
		result = append(result, s.ToDomain(salonID))
	}
	return result, nil
}

// GetSalonServicesWithGracefulDegradation получает каталог салона и сводит любые сбои к ErrServiceDegraded
func (c *Client) GetSalonServicesWithGracefulDegradation(ctx context.Context, salonID int64) ([]domain.ServiceOffering, error) {
	c.log.Info("Fetching service catalog for salon_id=%d", salonID)

	services, err := c.GetSalonServices(ctx, salonID)
	if err != nil {
		// Повышаем уровень логирования до ERROR, чтобы быстрее заметить проблему
		c.log.Error("ServiceOfferingService unavailable for salon_id=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: salon_id=%d, error=%v", ErrServiceDegraded, salonID, err)
	}

	c.log.Info("Successfully fetched %d services for salon_id=%d", len(services), salonID)
	return services, nil
}
