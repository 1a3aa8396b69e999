package create_checkout

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonCheckout/internal/domain"
	"github.com/m04kA/SMC-SalonCheckout/internal/infra/events"
	"github.com/m04kA/SMC-SalonCheckout/internal/integrations/bookingservice"
	"github.com/m04kA/SMC-SalonCheckout/internal/integrations/upstream"
	"github.com/m04kA/SMC-SalonCheckout/internal/service/payments"
	paymentsModels "github.com/m04kA/SMC-SalonCheckout/internal/service/payments/models"
	"github.com/m04kA/SMC-SalonCheckout/pkg/logger"
)

type mockOfferingClient struct {
	mock.Mock
}

func (m *mockOfferingClient) GetSalonServices(ctx context.Context, salonID int64) ([]domain.ServiceOffering, error) {
	args := m.Called(ctx, salonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ServiceOffering), args.Error(1)
}

type mockBookingClient struct {
	mock.Mock
}

func (m *mockBookingClient) CreateBooking(ctx context.Context, salonID, customerID int64, start, end time.Time, serviceIDs []int64) (*domain.Booking, error) {
	args := m.Called(ctx, salonID, customerID, start, end, serviceIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type mockDispatcher struct {
	mock.Mock
}

func (m *mockDispatcher) Dispatch(ctx context.Context, req *paymentsModels.DispatchRequest) (*paymentsModels.DispatchResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentsModels.DispatchResult), args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event *events.CheckoutEvent) error {
	return m.Called(ctx, event).Error(0)
}

var catalog = []domain.ServiceOffering{
	{ID: 1, SalonID: 7, Name: "Haircut", Price: 300, DurationMinutes: 30},
	{ID: 2, SalonID: 7, Name: "Beard trim", Price: 200, DurationMinutes: 15},
	{ID: 3, SalonID: 7, Name: "Colouring", Price: 1200, DurationMinutes: 90},
}

type fixture struct {
	offering   *mockOfferingClient
	booking    *mockBookingClient
	dispatcher *mockDispatcher
	publisher  *mockPublisher
	uc         *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		offering:   new(mockOfferingClient),
		booking:    new(mockBookingClient),
		dispatcher: new(mockDispatcher),
		publisher:  new(mockPublisher),
	}
	f.uc = NewUseCase(f.offering, f.booking, f.dispatcher, f.publisher, logger.NewNop())
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()
	return f
}

func validRequest(method domain.PaymentMethod) *Request {
	return &Request{
		SalonID:       7,
		CustomerID:    9,
		Date:          time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
		StartTime:     "10:30",
		ServiceIDs:    []int64{1, 2},
		PaymentMethod: method,
	}
}

func TestExecute_OnlinePayment(t *testing.T) {
	f := newFixture()
	req := validRequest(domain.PaymentMethodStripe)

	start := time.Date(2025, 3, 20, 10, 30, 0, 0, time.UTC)
	end := start.Add(45 * time.Minute)

	f.offering.On("GetSalonServices", mock.Anything, int64(7)).Return(catalog, nil)
	f.booking.On("CreateBooking", mock.Anything, int64(7), int64(9), start, end, []int64{1, 2}).
		Return(&domain.Booking{ID: 42, SalonID: 7, CustomerID: 9, Status: domain.StatusPending}, nil)
	f.dispatcher.On("Dispatch", mock.Anything, &paymentsModels.DispatchRequest{
		BookingID: 42, SalonID: 7, CustomerID: 9, Amount: 500, Method: domain.PaymentMethodStripe,
	}).Return(&paymentsModels.DispatchResult{
		BookingID: 42, Method: domain.PaymentMethodStripe, Amount: 500, RedirectURL: "https://pay.example/abc",
	}, nil)

	res, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int64(42), res.Booking.ID)
	assert.Equal(t, 500.0, res.Booking.TotalPrice)
	assert.Equal(t, "https://pay.example/abc", res.Payment.RedirectURL)
	f.booking.AssertExpectations(t)
	f.dispatcher.AssertExpectations(t)
	f.publisher.AssertCalled(t, "Publish", mock.Anything, mock.MatchedBy(func(e *events.CheckoutEvent) bool {
		return e.Type == events.TypeBookingCreated && e.BookingID == 42 && e.Amount == 500
	}))
}

func TestExecute_BookingFailureSkipsPayment(t *testing.T) {
	f := newFixture()
	upstreamErr := &upstream.Error{Service: "booking", StatusCode: 409, Message: "Slot already booked"}

	f.offering.On("GetSalonServices", mock.Anything, int64(7)).Return(catalog, nil)
	f.booking.On("CreateBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: %w", bookingservice.ErrRejected, upstreamErr))

	_, err := f.uc.Execute(context.Background(), validRequest(domain.PaymentMethodRazorpay))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBookingCreationFailed)
	assert.Equal(t, "Slot already booked", upstream.MessageOr(err, "fallback"))
	f.dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestExecute_PaymentFailureKeepsBookingID(t *testing.T) {
	f := newFixture()

	f.offering.On("GetSalonServices", mock.Anything, int64(7)).Return(catalog, nil)
	f.booking.On("CreateBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.Booking{ID: 42, Status: domain.StatusPending}, nil)
	f.dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return(nil, payments.ErrPaymentLinkMissing)

	_, err := f.uc.Execute(context.Background(), validRequest(domain.PaymentMethodRazorpay))

	var pe *PaymentError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, int64(42), pe.BookingID)
	assert.ErrorIs(t, err, payments.ErrPaymentLinkMissing)
}

func TestExecute_UnknownServiceRejectedBeforeBooking(t *testing.T) {
	f := newFixture()
	req := validRequest(domain.PaymentMethodPayAtSalon)
	req.ServiceIDs = []int64{1, 99}

	f.offering.On("GetSalonServices", mock.Anything, int64(7)).Return(catalog, nil)

	_, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrServiceNotFound)
	f.booking.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_CatalogUnavailable(t *testing.T) {
	f := newFixture()
	f.offering.On("GetSalonServices", mock.Anything, int64(7)).Return(nil, errors.New("connection refused"))

	_, err := f.uc.Execute(context.Background(), validRequest(domain.PaymentMethodStripe))

	assert.ErrorIs(t, err, ErrCatalogUnavailable)
	f.booking.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{"zero salon", func(r *Request) { r.SalonID = 0 }, ErrInvalidInput},
		{"zero customer", func(r *Request) { r.CustomerID = 0 }, ErrInvalidInput},
		{"missing date", func(r *Request) { r.Date = time.Time{} }, ErrInvalidInput},
		{"slot before opening", func(r *Request) { r.StartTime = "08:30" }, ErrInvalidTimeSlot},
		{"slot after closing", func(r *Request) { r.StartTime = "21:00" }, ErrInvalidTimeSlot},
		{"off-grid slot", func(r *Request) { r.StartTime = "10:15" }, ErrInvalidTimeSlot},
		{"no services", func(r *Request) { r.ServiceIDs = nil }, ErrInvalidInput},
		{"unknown method", func(r *Request) { r.PaymentMethod = "PAYPAL" }, ErrInvalidPaymentMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest(domain.PaymentMethodStripe)
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, tt.wantErr)
			f.offering.AssertNotCalled(t, "GetSalonServices", mock.Anything, mock.Anything)
			f.booking.AssertNotCalled(t, "CreateBooking", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_LastSlotAccepted(t *testing.T) {
	f := newFixture()
	req := validRequest(domain.PaymentMethodPayAtSalon)
	req.StartTime = "20:30"
	req.ServiceIDs = []int64{3}

	start := time.Date(2025, 3, 20, 20, 30, 0, 0, time.UTC)
	f.offering.On("GetSalonServices", mock.Anything, int64(7)).Return(catalog, nil)
	f.booking.On("CreateBooking", mock.Anything, int64(7), int64(9), start, start.Add(90*time.Minute), []int64{3}).
		Return(&domain.Booking{ID: 5, TotalPrice: 1200}, nil)
	f.dispatcher.On("Dispatch", mock.Anything, mock.Anything).
		Return(&paymentsModels.DispatchResult{BookingID: 5, Method: domain.PaymentMethodPayAtSalon, Amount: 1200}, nil)

	res, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, res.Payment.RequiresRedirect())
}
