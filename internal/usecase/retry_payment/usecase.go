package retry_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonCheckout/internal/domain"
	bookingClient "github.com/m04kA/SMC-SalonCheckout/internal/integrations/bookingservice"
	paymentsModels "github.com/m04kA/SMC-SalonCheckout/internal/service/payments/models"
)

// UseCase use case повторной оплаты существующего бронирования из личного кабинета
type UseCase struct {
	bookingClient  BookingServiceClient
	offeringClient OfferingServiceClient
	dispatcher     PaymentDispatcher
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingClient BookingServiceClient,
	offeringClient OfferingServiceClient,
	dispatcher PaymentDispatcher,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingClient:  bookingClient,
		offeringClient: offeringClient,
		dispatcher:     dispatcher,
		logger:         logger,
	}
}

// Execute загружает бронирование и заново запускает оплату выбранным способом
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*paymentsModels.DispatchResult, error) {
	uc.logger.Info("RetryPayment: booking=%d, customer=%d, method=%s", req.BookingID, req.CustomerID, req.PaymentMethod)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RetryPayment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бронирование
	booking, err := uc.bookingClient.GetBooking(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingClient.ErrBookingNotFound) {
			uc.logger.Warn("RetryPayment: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("RetryPayment: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 3. Проверяем владельца и статус
	if err := validateBooking(booking, req.CustomerID); err != nil {
		uc.logger.Warn("RetryPayment: booking id=%d, customer=%d: %v", req.BookingID, req.CustomerID, err)
		return nil, err
	}

	// 4. Определяем сумму
	amount, err := uc.resolveAmount(ctx, booking)
	if err != nil {
		return nil, err
	}

	// 5. Запускаем оплату
	result, err := uc.dispatcher.Dispatch(ctx, &paymentsModels.DispatchRequest{
		BookingID:  booking.ID,
		SalonID:    booking.SalonID,
		CustomerID: booking.CustomerID,
		Amount:     amount,
		Method:     req.PaymentMethod,
	})
	if err != nil {
		uc.logger.Error("RetryPayment: dispatch failed for booking=%d, method=%s: %v", booking.ID, req.PaymentMethod, err)
		return nil, err
	}

	return result, nil
}

// resolveAmount берет сумму из бронирования, а если её нет, пересчитывает по каталогу салона
func (uc *UseCase) resolveAmount(ctx context.Context, booking *domain.Booking) (float64, error) {
	if booking.TotalPrice > 0 {
		return booking.TotalPrice, nil
	}

	catalog, err := uc.offeringClient.GetSalonServices(ctx, booking.SalonID)
	if err != nil {
		uc.logger.Error("RetryPayment: failed to load catalog for salon=%d: %v", booking.SalonID, err)
		return 0, fmt.Errorf("%w: failed to load catalog: %v", ErrInternal, err)
	}

	amount := domain.CalculateTotal(booking.ServiceIDs, catalog)
	if amount <= 0 {
		uc.logger.Warn("RetryPayment: booking=%d has no priced services", booking.ID)
		return 0, ErrInvalidAmount
	}
	return amount, nil
}
