package payments

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonCheckout/internal/domain"
	"github.com/m04kA/SMC-SalonCheckout/internal/infra/events"
	"github.com/m04kA/SMC-SalonCheckout/internal/integrations/paymentservice"
	"github.com/m04kA/SMC-SalonCheckout/internal/service/payments/models"
)

// PayAtSalonMessage сообщение, которое клиент видит после регистрации оплаты в салоне
const PayAtSalonMessage = "Booking confirmed! You can pay when you visit the salon."

// Service запускает оплату бронирования выбранным способом.
// Повторных попыток не делает: любая ошибка возвращается вызывающему.
type Service struct {
	paymentClient PaymentServiceClient
	handoffRepo   HandoffRepository
	publisher     EventPublisher
	metrics       Metrics
	handoffTTL    time.Duration
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса оплаты
func NewService(
	paymentClient PaymentServiceClient,
	handoffRepo HandoffRepository,
	publisher EventPublisher,
	metrics Metrics,
	handoffTTL time.Duration,
	logger Logger,
) *Service {
	if handoffTTL <= 0 {
		handoffTTL = domain.DefaultHandoffTTL
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Service{
		paymentClient: paymentClient,
		handoffRepo:   handoffRepo,
		publisher:     publisher,
		metrics:       metrics,
		handoffTTL:    handoffTTL,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Dispatch запускает оплату: регистрирует оплату в салоне или создает ссылку на платежный шлюз
func (s *Service) Dispatch(ctx context.Context, req *models.DispatchRequest) (*models.DispatchResult, error) {
	if req == nil || req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: booking id must be positive", ErrInvalidInput)
	}

	s.logger.Info("Dispatch: booking=%d, salon=%d, customer=%d, amount=%.2f, method=%s",
		req.BookingID, req.SalonID, req.CustomerID, req.Amount, req.Method)

	switch {
	case req.Method == domain.PaymentMethodPayAtSalon:
		return s.dispatchPayAtSalon(ctx, req)
	case req.Method.IsOnline():
		return s.dispatchOnline(ctx, req)
	default:
		s.metrics.IncPaymentDispatch(string(req.Method), "unsupported")
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMethod, req.Method)
	}
}

func (s *Service) dispatchPayAtSalon(ctx context.Context, req *models.DispatchRequest) (*models.DispatchResult, error) {
	if _, err := s.paymentClient.RegisterPayAtSalon(ctx, req.BookingID, req.Amount, req.SalonID, req.CustomerID); err != nil {
		s.logger.Error("Dispatch: pay-at-salon failed for booking=%d, method=%s: %v", req.BookingID, req.Method, err)
		s.metrics.IncPaymentDispatch(string(req.Method), "failed")
		return nil, fmt.Errorf("%w: %w", ErrPayAtSalonFailed, err)
	}

	now := s.timeProvider.Now()
	record := &domain.HandoffRecord{
		Kind:      domain.HandoffPaymentSuccess,
		BookingID: req.BookingID,
		Method:    domain.PaymentMethodPayAtSalon,
		Amount:    req.Amount,
		Message:   PayAtSalonMessage,
		CreatedAt: now,
		ExpiresAt: now.Add(s.handoffTTL),
	}

	// Оплата уже зарегистрирована, поэтому сбой сохранения записи не отменяет результат
	if err := s.handoffRepo.Save(ctx, record); err != nil {
		s.logger.Error("Dispatch: failed to store payment_success for booking=%d: %v", req.BookingID, err)
		s.metrics.IncHandoff(string(record.Kind), "save", "error")
	} else {
		s.metrics.IncHandoff(string(record.Kind), "save", "ok")
	}

	s.metrics.IncPaymentDispatch(string(req.Method), "ok")
	s.publish(ctx, events.TypePayAtSalonRegistered, req)

	s.logger.Info("Dispatch: pay-at-salon registered for booking=%d", req.BookingID)
	return &models.DispatchResult{
		BookingID: req.BookingID,
		Method:    domain.PaymentMethodPayAtSalon,
		Amount:    req.Amount,
		Message:   PayAtSalonMessage,
	}, nil
}

func (s *Service) dispatchOnline(ctx context.Context, req *models.DispatchRequest) (*models.DispatchResult, error) {
	link, err := s.paymentClient.CreatePaymentLink(ctx, req.Method, &paymentservice.CreatePaymentLinkRequest{
		ID:         req.BookingID,
		SalonID:    req.SalonID,
		CustomerID: req.CustomerID,
		TotalPrice: req.Amount,
	})
	if err != nil {
		s.logger.Error("Dispatch: payment link creation failed for booking=%d, method=%s: %v", req.BookingID, req.Method, err)
		s.metrics.IncPaymentDispatch(string(req.Method), "failed")
		return nil, fmt.Errorf("%w: %w", ErrPaymentLinkFailed, err)
	}

	redirectURL, field := link.RedirectURL()
	if redirectURL == "" {
		s.logger.Error("Dispatch: payment link missing in response for booking=%d, method=%s", req.BookingID, req.Method)
		s.metrics.IncPaymentDispatch(string(req.Method), "link_missing")
		return nil, ErrPaymentLinkMissing
	}

	s.metrics.IncPaymentLinkField(field)
	if field != paymentservice.FieldPaymentLinkURL {
		s.logger.Warn("Dispatch: payment service returned link in legacy field %q for booking=%d", field, req.BookingID)
	}

	now := s.timeProvider.Now()
	record := &domain.HandoffRecord{
		Kind:      domain.HandoffPendingPayment,
		BookingID: req.BookingID,
		Method:    req.Method,
		Amount:    req.Amount,
		CreatedAt: now,
		ExpiresAt: now.Add(s.handoffTTL),
	}

	// Без записи возврат со шлюза не сможет определить способ оплаты, поэтому без неё не перенаправляем
	if err := s.handoffRepo.Save(ctx, record); err != nil {
		s.logger.Error("Dispatch: failed to store pending_payment for booking=%d: %v", req.BookingID, err)
		s.metrics.IncHandoff(string(record.Kind), "save", "error")
		s.metrics.IncPaymentDispatch(string(req.Method), "failed")
		return nil, fmt.Errorf("%w: %v", ErrHandoffFailed, err)
	}
	s.metrics.IncHandoff(string(record.Kind), "save", "ok")

	s.metrics.IncPaymentDispatch(string(req.Method), "ok")
	s.publish(ctx, events.TypePaymentLinkCreated, req)

	s.logger.Info("Dispatch: payment link created for booking=%d, method=%s", req.BookingID, req.Method)
	return &models.DispatchResult{
		BookingID:   req.BookingID,
		Method:      req.Method,
		Amount:      req.Amount,
		RedirectURL: redirectURL,
	}, nil
}

func (s *Service) publish(ctx context.Context, eventType events.EventType, req *models.DispatchRequest) {
	event := events.NewEvent(eventType, req.BookingID, s.timeProvider.Now())
	event.Method = string(req.Method)
	event.Amount = req.Amount
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Dispatch: failed to publish %s for booking=%d: %v", eventType, req.BookingID, err)
	}
}
