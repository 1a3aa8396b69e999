package handle_return

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-SalonCheckout/internal/domain"
	"github.com/m04kA/SMC-SalonCheckout/internal/infra/events"
	handoffRepo "github.com/m04kA/SMC-SalonCheckout/internal/infra/storage/handoff"
)

// defaultRouteMethod способ оплаты для маршрута payment-success без записи и без параметра method
const defaultRouteMethod = "Stripe"

// UseCase use case обработки возврата клиента после оплаты.
// Источники данных проверяются по порядку: параметры шлюза, маршрут payment-success, запись payment_success.
type UseCase struct {
	verifier     PaymentVerifier
	handoffRepo  HandoffRepository
	reconciler   Reconciler
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	verifier PaymentVerifier,
	handoffRepo HandoffRepository,
	reconciler Reconciler,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &UseCase{
		verifier:     verifier,
		handoffRepo:  handoffRepo,
		reconciler:   reconciler,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute обрабатывает один возврат клиента.
// Ошибки не возвращаются: любой сбой превращается в ответ со статусом failed.
func (uc *UseCase) Execute(ctx context.Context, req *Request) *Response {
	uc.logger.Info("HandleReturn: booking=%q, gateway=%t, success_route=%t, method=%q",
		req.BookingID, req.Gateway != nil, req.SuccessRoute, req.Method)

	bookingID, hasBookingID := parseBookingID(req.BookingID)

	var resp *Response
	switch {
	case req.Gateway != nil:
		resp = uc.fromGateway(ctx, req)
	case req.SuccessRoute && hasBookingID:
		resp = uc.fromRoute(ctx, bookingID, req.Method)
	case hasBookingID:
		resp = uc.fromHandoff(ctx, bookingID)
	default:
		resp = failed(SourceNone, 0, MsgNoPaymentInfo)
	}

	uc.metrics.IncReturnOutcome(string(resp.Source), string(resp.Status))

	if resp.Status != StatusSuccess {
		uc.logger.Warn("HandleReturn: booking=%d, source=%s: %s", resp.BookingID, resp.Source, resp.Message)
		uc.publish(ctx, events.TypePaymentFailed, resp)
		return resp
	}

	uc.publish(ctx, events.TypePaymentVerified, resp)
	uc.clearMarkers(ctx, resp.BookingID)

	// Клиент может закрыть страницу, подтверждение при этом должно дойти до конца
	confirmation, err := uc.reconciler.Reconcile(context.WithoutCancel(ctx), resp.BookingID)
	if err != nil {
		uc.logger.Error("HandleReturn: confirmation run for booking=%d ended with error: %v", resp.BookingID, err)
	}
	resp.Confirmation = confirmation

	uc.logger.Info("HandleReturn: booking=%d paid via %s, source=%s", resp.BookingID, resp.Method, resp.Source)
	return resp
}

// Pickup забирает запись payment_success для личного кабинета без подтверждения бронирования
func (uc *UseCase) Pickup(ctx context.Context, bookingID int64) (*PickupResponse, error) {
	if bookingID <= 0 {
		return nil, ErrInvalidBookingID
	}

	record, err := uc.handoffRepo.Consume(ctx, domain.HandoffPaymentSuccess, bookingID, uc.timeProvider.Now())
	if err != nil {
		if errors.Is(err, handoffRepo.ErrRecordNotFound) {
			uc.metrics.IncHandoff(string(domain.HandoffPaymentSuccess), "consume", "miss")
			return nil, ErrNothingToPickUp
		}
		uc.metrics.IncHandoff(string(domain.HandoffPaymentSuccess), "consume", "error")
		uc.logger.Error("Pickup: failed to consume payment_success for booking=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	uc.metrics.IncHandoff(string(domain.HandoffPaymentSuccess), "consume", "ok")

	return &PickupResponse{
		BookingID: record.BookingID,
		Method:    methodLabel(record.Method),
		Amount:    record.Amount,
		Message:   record.Message,
	}, nil
}

func (uc *UseCase) fromGateway(ctx context.Context, req *Request) *Response {
	cb := *req.Gateway
	if cb.BookingID == "" {
		cb.BookingID = req.BookingID
	}

	bookingID, ok := parseBookingID(cb.BookingID)
	if cb.PaymentID == "" || !ok {
		return failed(SourceGateway, bookingID, MsgMissingGatewayParams)
	}

	result, err := uc.verifier.VerifyRazorpay(ctx, &cb)
	if err != nil {
		uc.logger.Error("HandleReturn: razorpay verification for booking=%d, payment=%s failed: %v", bookingID, cb.PaymentID, err)
		return failed(SourceGateway, bookingID, MsgVerificationFailed)
	}
	if !result.Success {
		reason := result.Error
		if reason == "" {
			reason = MsgVerificationFailed
		}
		return failed(SourceGateway, bookingID, reason)
	}

	label := domain.PaymentMethodRazorpay.Label()
	return &Response{
		Status:    StatusSuccess,
		Source:    SourceGateway,
		Message:   successMessage(label),
		BookingID: bookingID,
		PaymentID: cb.PaymentID,
		Method:    label,
	}
}

func (uc *UseCase) fromRoute(ctx context.Context, bookingID int64, method string) *Response {
	resp := &Response{
		Status:    StatusSuccess,
		Source:    SourceRoute,
		BookingID: bookingID,
		Method:    defaultRouteMethod,
	}

	record, err := uc.consume(ctx, domain.HandoffPendingPayment, bookingID)
	switch {
	case err == nil:
		resp.Method = methodLabel(record.Method)
		resp.Amount = record.Amount
	case method != "":
		if m, ok := domain.ParsePaymentMethod(method); ok {
			resp.Method = m.Label()
		} else {
			uc.logger.Warn("HandleReturn: unknown method %q for booking=%d, using %s", method, bookingID, defaultRouteMethod)
		}
	}

	resp.Message = successMessage(resp.Method)
	return resp
}

func (uc *UseCase) fromHandoff(ctx context.Context, bookingID int64) *Response {
	resp := &Response{
		Status:    StatusSuccess,
		Source:    SourceHandoff,
		BookingID: bookingID,
		Message:   MsgPaymentCompleted,
	}

	record, err := uc.consume(ctx, domain.HandoffPaymentSuccess, bookingID)
	if err != nil {
		return resp
	}

	resp.Method = methodLabel(record.Method)
	resp.Amount = record.Amount
	if record.Message != "" {
		resp.Message = record.Message
	}
	return resp
}

// consume читает запись и пишет метрику. Сбой хранилища считается отсутствием записи.
func (uc *UseCase) consume(ctx context.Context, kind domain.HandoffKind, bookingID int64) (*domain.HandoffRecord, error) {
	record, err := uc.handoffRepo.Consume(ctx, kind, bookingID, uc.timeProvider.Now())
	switch {
	case err == nil:
		uc.metrics.IncHandoff(string(kind), "consume", "ok")
	case errors.Is(err, handoffRepo.ErrRecordNotFound):
		uc.metrics.IncHandoff(string(kind), "consume", "miss")
	default:
		uc.metrics.IncHandoff(string(kind), "consume", "error")
		uc.logger.Error("HandleReturn: failed to consume %s for booking=%d: %v", kind, bookingID, err)
	}
	return record, err
}

// clearMarkers удаляет оставшиеся записи бронирования после успешной оплаты
func (uc *UseCase) clearMarkers(ctx context.Context, bookingID int64) {
	for _, kind := range []domain.HandoffKind{domain.HandoffPendingPayment, domain.HandoffPaymentSuccess} {
		if err := uc.handoffRepo.Delete(ctx, kind, bookingID); err != nil {
			uc.metrics.IncHandoff(string(kind), "delete", "error")
			uc.logger.Warn("HandleReturn: failed to delete %s for booking=%d: %v", kind, bookingID, err)
		}
	}
}

func (uc *UseCase) publish(ctx context.Context, eventType events.EventType, resp *Response) {
	event := events.NewEvent(eventType, resp.BookingID, uc.timeProvider.Now())
	event.Method = resp.Method
	event.Amount = resp.Amount
	if resp.Status == StatusFailed {
		event.Error = resp.Message
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("HandleReturn: failed to publish %s for booking=%d: %v", eventType, resp.BookingID, err)
	}
}

func failed(source Source, bookingID int64, reason string) *Response {
	return &Response{
		Status:    StatusFailed,
		Source:    source,
		Message:   MsgFailedPrefix + reason,
		BookingID: bookingID,
	}
}

func successMessage(method string) string {
	return fmt.Sprintf("Payment successful via %s!", method)
}

func methodLabel(m domain.PaymentMethod) string {
	if m == "" {
		return "Unknown"
	}
	return m.Label()
}

func parseBookingID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
