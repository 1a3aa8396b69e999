package handle_return

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonCheckout/internal/domain"
	"github.com/m04kA/SMC-SalonCheckout/internal/infra/events"
	handoffRepo "github.com/m04kA/SMC-SalonCheckout/internal/infra/storage/handoff"
	"github.com/m04kA/SMC-SalonCheckout/internal/integrations/paymentservice"
	"github.com/m04kA/SMC-SalonCheckout/pkg/logger"
)

type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) VerifyRazorpay(ctx context.Context, cb *paymentservice.RazorpayCallback) (*paymentservice.VerificationResult, error) {
	args := m.Called(ctx, cb)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentservice.VerificationResult), args.Error(1)
}

type mockHandoffRepo struct {
	mock.Mock
}

func (m *mockHandoffRepo) Consume(ctx context.Context, kind domain.HandoffKind, bookingID int64, now time.Time) (*domain.HandoffRecord, error) {
	args := m.Called(ctx, kind, bookingID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HandoffRecord), args.Error(1)
}

func (m *mockHandoffRepo) Delete(ctx context.Context, kind domain.HandoffKind, bookingID int64) error {
	return m.Called(ctx, kind, bookingID).Error(0)
}

type mockReconciler struct {
	mock.Mock
}

func (m *mockReconciler) Reconcile(ctx context.Context, bookingID int64) (*domain.Confirmation, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Confirmation), args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event *events.CheckoutEvent) error {
	return m.Called(ctx, event).Error(0)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var testNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

type fixture struct {
	verifier   *mockVerifier
	repo       *mockHandoffRepo
	reconciler *mockReconciler
	publisher  *mockPublisher
	uc         *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		verifier:   new(mockVerifier),
		repo:       new(mockHandoffRepo),
		reconciler: new(mockReconciler),
		publisher:  new(mockPublisher),
	}
	f.uc = NewUseCase(f.verifier, f.repo, f.reconciler, f.publisher, nil, logger.NewNop())
	f.uc.timeProvider = fixedTime{now: testNow}
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.repo.On("Delete", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	return f
}

func confirmed(id int64) *domain.Confirmation {
	return &domain.Confirmation{BookingID: id, State: domain.ConfirmationConfirmed, Attempt: 1, MaxAttempts: 3}
}

func TestExecute_GatewaySuccessReconcilesOnce(t *testing.T) {
	f := newFixture()
	req := &Request{Gateway: &paymentservice.RazorpayCallback{PaymentID: "pay_1", BookingID: "42"}}

	f.verifier.On("VerifyRazorpay", mock.Anything, mock.MatchedBy(func(cb *paymentservice.RazorpayCallback) bool {
		return cb.PaymentID == "pay_1" && cb.BookingID == "42"
	})).Return(&paymentservice.VerificationResult{Success: true, PaymentID: "pay_1", BookingID: 42}, nil)
	f.reconciler.On("Reconcile", mock.Anything, int64(42)).Return(confirmed(42), nil).Once()

	resp := f.uc.Execute(context.Background(), req)

	assert.Equal(t, StatusSuccess, resp.Status)
	assert.Equal(t, SourceGateway, resp.Source)
	assert.Equal(t, "Razorpay", resp.Method)
	assert.Equal(t, "pay_1", resp.PaymentID)
	assert.Equal(t, int64(42), resp.BookingID)
	assert.False(t, resp.BookingConfirmationPending())
	f.reconciler.AssertNumberOfCalls(t, "Reconcile", 1)
	f.repo.AssertCalled(t, "Delete", mock.Anything, domain.HandoffPendingPayment, int64(42))
	f.repo.AssertCalled(t, "Delete", mock.Anything, domain.HandoffPaymentSuccess, int64(42))
}

func TestExecute_GatewayRejectedDoesNotReconcile(t *testing.T) {
	f := newFixture()
	req := &Request{Gateway: &paymentservice.RazorpayCallback{PaymentID: "pay_1", BookingID: "42"}}

	f.verifier.On("VerifyRazorpay", mock.Anything, mock.Anything).
		Return(&paymentservice.VerificationResult{Success: false, Error: "signature mismatch"}, nil)

	resp := f.uc.Execute(context.Background(), req)

	assert.Equal(t, StatusFailed, resp.Status)
	assert.Contains(t, resp.Message, "signature mismatch")
	assert.Nil(t, resp.Confirmation)
	f.reconciler.AssertNotCalled(t, "Reconcile", mock.Anything, mock.Anything)
	f.repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	f.publisher.AssertCalled(t, "Publish", mock.Anything, mock.MatchedBy(func(e *events.CheckoutEvent) bool {
		return e.Type == events.TypePaymentFailed && e.BookingID == 42
	}))
}

func TestExecute_GatewayTransportError(t *testing.T) {
	f := newFixture()
	req := &Request{Gateway: &paymentservice.RazorpayCallback{PaymentID: "pay_1"}, BookingID: "42"}

	f.verifier.On("VerifyRazorpay", mock.Anything, mock.MatchedBy(func(cb *paymentservice.RazorpayCallback) bool {
		return cb.BookingID == "42"
	})).Return(nil, errors.New("connection refused"))

	resp := f.uc.Execute(context.Background(), req)

	assert.Equal(t, StatusFailed, resp.Status)
	assert.Contains(t, resp.Message, MsgVerificationFailed)
	f.reconciler.AssertNotCalled(t, "Reconcile", mock.Anything, mock.Anything)
}

func TestExecute_GatewayMissingParams(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{"missing payment id", &Request{Gateway: &paymentservice.RazorpayCallback{BookingID: "42"}}},
		{"missing booking id", &Request{Gateway: &paymentservice.RazorpayCallback{PaymentID: "pay_1"}}},
		{"malformed booking id", &Request{Gateway: &paymentservice.RazorpayCallback{PaymentID: "pay_1", BookingID: "abc"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			resp := f.uc.Execute(context.Background(), tt.req)

			assert.Equal(t, StatusFailed, resp.Status)
			assert.Contains(t, resp.Message, MsgMissingGatewayParams)
			f.verifier.AssertNotCalled(t, "VerifyRazorpay", mock.Anything, mock.Anything)
			f.reconciler.AssertNotCalled(t, "Reconcile", mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_RouteUsesPendingPaymentMethod(t *testing.T) {
	f := newFixture()

	f.repo.On("Consume", mock.Anything, domain.HandoffPendingPayment, int64(42), testNow).
		Return(&domain.HandoffRecord{Kind: domain.HandoffPendingPayment, BookingID: 42, Method: domain.PaymentMethodRazorpay, Amount: 500}, nil)
	f.reconciler.On("Reconcile", mock.Anything, int64(42)).Return(confirmed(42), nil).Once()

	resp := f.uc.Execute(context.Background(), &Request{BookingID: "42", SuccessRoute: true})

	assert.Equal(t, StatusSuccess, resp.Status)
	assert.Equal(t, SourceRoute, resp.Source)
	assert.Equal(t, "Razorpay", resp.Method)
	assert.Equal(t, 500.0, resp.Amount)
	assert.Equal(t, "Payment successful via Razorpay!", resp.Message)
	f.reconciler.AssertNumberOfCalls(t, "Reconcile", 1)
}

func TestExecute_RouteMethodFallbacks(t *testing.T) {
	tests := []struct {
		name   string
		method string
		want   string
	}{
		{"explicit method", "razorpay", "Razorpay"},
		{"no method", "", "Stripe"},
		{"unknown method", "paypal", "Stripe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.repo.On("Consume", mock.Anything, domain.HandoffPendingPayment, int64(42), testNow).
				Return(nil, handoffRepo.ErrRecordNotFound)
			f.reconciler.On("Reconcile", mock.Anything, int64(42)).Return(confirmed(42), nil)

			resp := f.uc.Execute(context.Background(), &Request{BookingID: "42", SuccessRoute: true, Method: tt.method})

			assert.Equal(t, StatusSuccess, resp.Status)
			assert.Equal(t, tt.want, resp.Method)
		})
	}
}

func TestExecute_HandoffRecord(t *testing.T) {
	f := newFixture()

	f.repo.On("Consume", mock.Anything, domain.HandoffPaymentSuccess, int64(42), testNow).
		Return(&domain.HandoffRecord{
			Kind:      domain.HandoffPaymentSuccess,
			BookingID: 42,
			Method:    domain.PaymentMethodPayAtSalon,
			Amount:    500,
			Message:   "Booking confirmed! You can pay when you visit the salon.",
		}, nil)
	f.reconciler.On("Reconcile", mock.Anything, int64(42)).Return(confirmed(42), nil).Once()

	resp := f.uc.Execute(context.Background(), &Request{BookingID: "42"})

	assert.Equal(t, StatusSuccess, resp.Status)
	assert.Equal(t, SourceHandoff, resp.Source)
	assert.Equal(t, "PAY_AT_SALON", resp.Method)
	assert.Equal(t, 500.0, resp.Amount)
	assert.Equal(t, "Booking confirmed! You can pay when you visit the salon.", resp.Message)
}

func TestExecute_DefaultSuccessWithBookingIDOnly(t *testing.T) {
	f := newFixture()

	f.repo.On("Consume", mock.Anything, domain.HandoffPaymentSuccess, int64(42), testNow).
		Return(nil, handoffRepo.ErrRecordNotFound)
	f.reconciler.On("Reconcile", mock.Anything, int64(42)).
		Return(&domain.Confirmation{BookingID: 42, State: domain.ConfirmationExhausted, Attempt: 3, MaxAttempts: 3}, nil)

	resp := f.uc.Execute(context.Background(), &Request{BookingID: "42"})

	assert.Equal(t, StatusSuccess, resp.Status)
	assert.Equal(t, MsgPaymentCompleted, resp.Message)
	assert.True(t, resp.BookingConfirmationPending())
}

func TestExecute_NoPaymentInformation(t *testing.T) {
	f := newFixture()

	resp := f.uc.Execute(context.Background(), &Request{})

	assert.Equal(t, StatusFailed, resp.Status)
	assert.Equal(t, SourceNone, resp.Source)
	assert.Contains(t, resp.Message, MsgNoPaymentInfo)
	f.repo.AssertNotCalled(t, "Consume", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.reconciler.AssertNotCalled(t, "Reconcile", mock.Anything, mock.Anything)
}

func TestExecute_ReconcileSurvivesClientCancel(t *testing.T) {
	f := newFixture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f.repo.On("Consume", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, handoffRepo.ErrRecordNotFound)
	f.reconciler.On("Reconcile", mock.MatchedBy(func(c context.Context) bool {
		return c.Err() == nil
	}), int64(42)).Return(confirmed(42), nil).Once()

	resp := f.uc.Execute(ctx, &Request{BookingID: "42"})

	require.NotNil(t, resp.Confirmation)
	assert.Equal(t, domain.ConfirmationConfirmed, resp.Confirmation.State)
}

func TestPickup(t *testing.T) {
	f := newFixture()
	f.repo.On("Consume", mock.Anything, domain.HandoffPaymentSuccess, int64(42), testNow).
		Return(&domain.HandoffRecord{BookingID: 42, Method: domain.PaymentMethodPayAtSalon, Amount: 500, Message: "ok"}, nil).Once()
	f.repo.On("Consume", mock.Anything, domain.HandoffPaymentSuccess, int64(42), testNow).
		Return(nil, handoffRepo.ErrRecordNotFound)

	res, err := f.uc.Pickup(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), res.BookingID)
	assert.Equal(t, "PAY_AT_SALON", res.Method)

	_, err = f.uc.Pickup(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNothingToPickUp)
	f.reconciler.AssertNotCalled(t, "Reconcile", mock.Anything, mock.Anything)
}

func TestPickup_StoreError(t *testing.T) {
	f := newFixture()
	f.repo.On("Consume", mock.Anything, domain.HandoffPaymentSuccess, int64(42), testNow).
		Return(nil, errors.New("db down"))

	_, err := f.uc.Pickup(context.Background(), 42)
	assert.ErrorIs(t, err, ErrInternal)

	_, err = f.uc.Pickup(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidBookingID)
}
