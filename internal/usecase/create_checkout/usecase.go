package create_checkout

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SalonCheckout/internal/domain"
	"github.com/m04kA/SMC-SalonCheckout/internal/infra/events"
	paymentsModels "github.com/m04kA/SMC-SalonCheckout/internal/service/payments/models"
)

// UseCase use case для оформления бронирования: создает бронирование и запускает оплату
type UseCase struct {
	offeringClient OfferingServiceClient
	bookingClient  BookingServiceClient
	dispatcher     PaymentDispatcher
	publisher      EventPublisher
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	offeringClient OfferingServiceClient,
	bookingClient BookingServiceClient,
	dispatcher PaymentDispatcher,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		offeringClient: offeringClient,
		bookingClient:  bookingClient,
		dispatcher:     dispatcher,
		publisher:      publisher,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case оформления бронирования
// Оплата запускается только после того, как BookingService создал бронирование
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateCheckout: salon=%d, customer=%d, date=%s, time=%s, services=%v, method=%s",
		req.SalonID, req.CustomerID, req.Date.Format(domain.DateFormat), req.StartTime, req.ServiceIDs, req.PaymentMethod)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateCheckout: validation failed: %v", err)
		return nil, err
	}

	// 2. Загружаем каталог салона
	catalog, err := uc.offeringClient.GetSalonServices(ctx, req.SalonID)
	if err != nil {
		uc.logger.Error("CreateCheckout: failed to load catalog for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	// 3. Проверяем, что все услуги есть в каталоге
	if err := validateServicesInCatalog(req.ServiceIDs, catalog); err != nil {
		uc.logger.Warn("CreateCheckout: salon=%d: %v", req.SalonID, err)
		return nil, err
	}

	// 4. Считаем сумму и время окончания
	total := domain.CalculateTotal(req.ServiceIDs, catalog)
	start, err := domain.CombineDateAndSlot(req.Date, req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err)
	}
	end := start.Add(domain.TotalDuration(req.ServiceIDs, catalog))

	// 5. Создаем бронирование
	booking, err := uc.bookingClient.CreateBooking(ctx, req.SalonID, req.CustomerID, start, end, req.ServiceIDs)
	if err != nil {
		uc.logger.Error("CreateCheckout: booking creation failed for salon=%d, customer=%d: %v", req.SalonID, req.CustomerID, err)
		return nil, fmt.Errorf("%w: %w", ErrBookingCreationFailed, err)
	}
	if booking.TotalPrice <= 0 {
		booking.TotalPrice = total
	}

	uc.logger.Info("CreateCheckout: booking=%d created, total=%.2f", booking.ID, total)
	uc.publishCreated(ctx, booking, req.PaymentMethod, total)

	// 6. Передаем бронирование в оплату
	payment, err := uc.dispatcher.Dispatch(ctx, &paymentsModels.DispatchRequest{
		BookingID:  booking.ID,
		SalonID:    req.SalonID,
		CustomerID: req.CustomerID,
		Amount:     total,
		Method:     req.PaymentMethod,
	})
	if err != nil {
		uc.logger.Error("CreateCheckout: payment dispatch failed for booking=%d, method=%s: %v", booking.ID, req.PaymentMethod, err)
		return nil, &PaymentError{BookingID: booking.ID, Err: err}
	}

	return &Response{
		Booking: booking,
		Payment: payment,
	}, nil
}

func (uc *UseCase) publishCreated(ctx context.Context, booking *domain.Booking, method domain.PaymentMethod, total float64) {
	event := events.NewEvent(events.TypeBookingCreated, booking.ID, uc.timeProvider.Now())
	event.Method = string(method)
	event.Amount = total
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("CreateCheckout: failed to publish %s for booking=%d: %v", event.Type, booking.ID, err)
	}
}
