package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SalonCheckout/internal/domain"
)

// UseCase use case для получения слотов салона на дату
type UseCase struct {
	bookingClient BookingServiceClient
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingClient BookingServiceClient, logger Logger) *UseCase {
	return &UseCase{
		bookingClient: bookingClient,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Если BookingService недоступен, слоты возвращаются без учета занятости
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: salon=%d, date=%s", req.SalonID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время в той же шкале, что и дата запроса
	now := wallClock(uc.timeProvider.Now())

	resp := &Response{
		Date:    req.Date,
		SalonID: req.SalonID,
		Slots:   []domain.AvailableSlot{},
	}

	// 3. На прошедшие даты слотов нет
	if isDateInPast(req.Date, now) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return resp, nil
	}

	// 4. Получаем занятые интервалы
	booked, err := uc.bookingClient.GetBookedSlots(ctx, req.SalonID, req.Date)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: booked slots unavailable for salon=%d, date=%s, showing all slots: %v",
			req.SalonID, req.Date.Format(domain.DateFormat), err)
		booked = nil
		resp.Degraded = true
	}

	// 5. Строим слоты
	slots, err := buildSlots(req.Date, now, booked)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to build slots: %v", err)
		return nil, fmt.Errorf("%w: failed to build slots: %v", ErrInternal, err)
	}
	resp.Slots = slots

	uc.logger.Info("GetAvailableSlots: generated %d slots for salon=%d, date=%s, booked_intervals=%d",
		len(slots), req.SalonID, req.Date.Format(domain.DateFormat), len(booked))

	return resp, nil
}
