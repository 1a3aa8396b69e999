package retry_payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonCheckout/internal/api/handlers"
	"github.com/m04kA/SMC-SalonCheckout/internal/api/middleware"
	"github.com/m04kA/SMC-SalonCheckout/internal/domain"
	"github.com/m04kA/SMC-SalonCheckout/internal/integrations/paymentservice"
	"github.com/m04kA/SMC-SalonCheckout/internal/integrations/upstream"
	"github.com/m04kA/SMC-SalonCheckout/internal/service/payments"
	paymentsModels "github.com/m04kA/SMC-SalonCheckout/internal/service/payments/models"
	retryPayment "github.com/m04kA/SMC-SalonCheckout/internal/usecase/retry_payment"
	"github.com/m04kA/SMC-SalonCheckout/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *retryPayment.Request) (*paymentsModels.DispatchResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentsModels.DispatchResult), args.Error(1)
}

func serve(uc *mockUseCase, path, body, userID string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	protected := r.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.Auth)
	protected.HandleFunc("/bookings/{bookingId}/payment/retry", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if userID != "" {
		req.Header.Set(middleware.UserIDHeader, userID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandle_Redirect(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, &retryPayment.Request{
		BookingID: 42, CustomerID: 9, PaymentMethod: domain.PaymentMethodRazorpay,
	}).Return(&paymentsModels.DispatchResult{
		BookingID: 42, Method: domain.PaymentMethodRazorpay, Amount: 750, RedirectURL: "https://rzp.example/pay",
	}, nil)

	w := serve(uc, "/api/v1/bookings/42/payment/retry", `{"paymentMethod":"razorpay"}`, "9")

	require.Equal(t, http.StatusOK, w.Code)
	var resp PaymentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.BookingID)
	assert.True(t, resp.RequiresRedirect)
	require.NotNil(t, resp.RedirectURL)
	assert.Equal(t, "https://rzp.example/pay", *resp.RedirectURL)
	assert.Nil(t, resp.Message)
}

func TestHandle_RequiresUser(t *testing.T) {
	uc := new(mockUseCase)

	w := serve(uc, "/api/v1/bookings/42/payment/retry", `{"paymentMethod":"stripe"}`, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestHandle_BadRequest(t *testing.T) {
	uc := new(mockUseCase)

	assert.Equal(t, http.StatusBadRequest, serve(uc, "/api/v1/bookings/x/payment/retry", `{"paymentMethod":"stripe"}`, "9").Code)
	assert.Equal(t, http.StatusBadRequest, serve(uc, "/api/v1/bookings/42/payment/retry", `{"method":"stripe"}`, "9").Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "invalid method", err: retryPayment.ErrInvalidPaymentMethod, wantStatus: http.StatusBadRequest, wantMsg: msgInvalidPaymentMethod},
		{name: "not found", err: retryPayment.ErrBookingNotFound, wantStatus: http.StatusNotFound, wantMsg: msgBookingNotFound},
		{name: "other customer", err: retryPayment.ErrAccessDenied, wantStatus: http.StatusForbidden, wantMsg: msgAccessDenied},
		{name: "cancelled", err: retryPayment.ErrBookingCancelled, wantStatus: http.StatusConflict, wantMsg: msgBookingCancelled},
		{name: "already paid", err: retryPayment.ErrAlreadyPaid, wantStatus: http.StatusConflict, wantMsg: msgAlreadyPaid},
		{name: "link missing", err: payments.ErrPaymentLinkMissing, wantStatus: http.StatusBadGateway, wantMsg: msgPaymentLinkMissing},
		{
			name:       "upstream message",
			err:        fmt.Errorf("%w: %w", paymentservice.ErrRejected, &upstream.Error{Service: "payment", StatusCode: 400, Message: "Amount too small"}),
			wantStatus: http.StatusBadGateway,
			wantMsg:    "Amount too small",
		},
		{name: "internal", err: fmt.Errorf("%w: boom", retryPayment.ErrInternal), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := serve(uc, "/api/v1/bookings/42/payment/retry", `{"paymentMethod":"stripe"}`, "9")

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantMsg != "" {
				var resp handlers.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tt.wantMsg, resp.Message)
			}
		})
	}
}
