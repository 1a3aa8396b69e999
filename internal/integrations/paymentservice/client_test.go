package paymentservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonCheckout/internal/domain"
	"github.com/m04kA/SMC-SalonCheckout/internal/integrations/upstream"
	"github.com/m04kA/SMC-SalonCheckout/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, nil, logger.NewNop())
}

func TestCreatePaymentLink(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/payments/create", r.URL.Path)
		assert.Equal(t, "STRIPE", r.URL.Query().Get("paymentMethod"))

		var body CreatePaymentLinkRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, CreatePaymentLinkRequest{ID: 42, SalonID: 7, CustomerID: 9, TotalPrice: 500}, body)

		_, _ = w.Write([]byte(`{"payment_link_url":"https://pay.example/x","payment_link_id":"plink_1"}`))
	})

	link, err := client.CreatePaymentLink(context.Background(), domain.PaymentMethodStripe,
		&CreatePaymentLinkRequest{ID: 42, SalonID: 7, CustomerID: 9, TotalPrice: 500})
	require.NoError(t, err)

	url, field := link.RedirectURL()
	assert.Equal(t, "https://pay.example/x", url)
	assert.Equal(t, FieldPaymentLinkURL, field)
}

func TestCreatePaymentLink_Rejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Stripe error: invalid amount"}`))
	})

	_, err := client.CreatePaymentLink(context.Background(), domain.PaymentMethodStripe, &CreatePaymentLinkRequest{ID: 1})
	assert.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, "Stripe error: invalid amount", upstream.MessageOr(err, ""))
}

func TestRedirectURL_Fallbacks(t *testing.T) {
	tests := []struct {
		name      string
		resp      PaymentLinkResponse
		wantURL   string
		wantField string
	}{
		{name: "canonical wins", resp: PaymentLinkResponse{PaymentLinkURL: "a", PaymentLink: "b", URL: "c"}, wantURL: "a", wantField: FieldPaymentLinkURL},
		{name: "paymentLink before url", resp: PaymentLinkResponse{PaymentLink: "https://pay.example/abc", URL: "c"}, wantURL: "https://pay.example/abc", wantField: FieldPaymentLink},
		{name: "url last", resp: PaymentLinkResponse{URL: "c"}, wantURL: "c", wantField: FieldURL},
		{name: "blank ignored", resp: PaymentLinkResponse{PaymentLinkURL: "  ", URL: "c"}, wantURL: "c", wantField: FieldURL},
		{name: "none", resp: PaymentLinkResponse{}, wantURL: "", wantField: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url, field := tt.resp.RedirectURL()
			assert.Equal(t, tt.wantURL, url)
			assert.Equal(t, tt.wantField, field)
		})
	}
}

func TestRegisterPayAtSalon(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/payments/pay-at-salon", r.URL.Path)

		var body map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(42), body["bookingId"])
		assert.Equal(t, float64(500), body["amount"])
		assert.Equal(t, float64(7), body["salonId"])
		assert.Equal(t, float64(9), body["customerId"])

		_, _ = w.Write([]byte(`{"success":true,"message":"Pay-at-salon booking confirmed","bookingId":42}`))
	})

	res, err := client.RegisterPayAtSalon(context.Background(), 42, 500, 7, 9)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, int64(42), res.BookingID)
}

func TestRegisterPayAtSalon_EmptyBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	res, err := client.RegisterPayAtSalon(context.Background(), 42, 500, 7, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(42), res.BookingID)
}

func TestRegisterPayAtSalon_Failure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to setup pay-at-salon: db down"}`))
	})

	_, err := client.RegisterPayAtSalon(context.Background(), 42, 500, 7, 9)
	assert.ErrorIs(t, err, ErrRejected)
}

func TestVerifyRazorpay(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantSuccess bool
		wantError   string
	}{
		{
			name:        "verified",
			status:      http.StatusOK,
			body:        `{"success":true,"message":"Payment confirmed successfully","paymentId":"pay_1","bookingId":42}`,
			wantSuccess: true,
		},
		{
			name:      "success false in 2xx",
			status:    http.StatusOK,
			body:      `{"success":false,"error":"signature mismatch"}`,
			wantError: "signature mismatch",
		},
		{
			name:      "rejected",
			status:    http.StatusBadRequest,
			body:      `{"error":"Payment not completed"}`,
			wantError: "Payment not completed",
		},
		{
			name:      "rejected with message and error",
			status:    http.StatusBadRequest,
			body:      `{"message":"Bad Request","error":"signature mismatch"}`,
			wantError: "signature mismatch",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				var cb RazorpayCallback
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&cb))
				assert.Equal(t, "pay_1", cb.PaymentID)
				assert.Equal(t, "42", cb.BookingID)

				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			res, err := client.VerifyRazorpay(context.Background(), &RazorpayCallback{PaymentID: "pay_1", BookingID: "42"})
			require.NoError(t, err)
			assert.Equal(t, tt.wantSuccess, res.Success)
			assert.Equal(t, tt.wantError, res.Error)
		})
	}
}
