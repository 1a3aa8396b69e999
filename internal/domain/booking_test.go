package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func catalog() []ServiceOffering {
	return []ServiceOffering{
		{ID: 1, Name: "Haircut", Price: 300, DurationMinutes: 30},
		{ID: 2, Name: "Beard", Price: 200, DurationMinutes: 15},
	}
}

func TestCalculateTotal(t *testing.T) {
	tests := []struct {
		name string
		ids  []int64
		want float64
	}{
		{name: "all matched", ids: []int64{1, 2}, want: 500},
		{name: "unmatched contributes zero", ids: []int64{1, 99}, want: 300},
		{name: "nothing matched", ids: []int64{98, 99}, want: 0},
		{name: "empty", ids: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateTotal(tt.ids, catalog()))
		})
	}
}

func TestTotalDuration(t *testing.T) {
	assert.Equal(t, 45*time.Minute, TotalDuration([]int64{1, 2}, catalog()))
	assert.Equal(t, time.Duration(0), TotalDuration([]int64{99}, catalog()))
}

func TestMissingServices(t *testing.T) {
	assert.Equal(t, []int64{99}, MissingServices([]int64{1, 99}, catalog()))
	assert.Empty(t, MissingServices([]int64{1, 2}, catalog()))
}

func TestPaymentMethod(t *testing.T) {
	m, ok := ParsePaymentMethod("razorpay")
	assert.True(t, ok)
	assert.Equal(t, PaymentMethodRazorpay, m)
	assert.True(t, m.IsOnline())
	assert.Equal(t, "Razorpay", m.Label())

	_, ok = ParsePaymentMethod("CASH")
	assert.False(t, ok)

	assert.False(t, PaymentMethodPayAtSalon.IsOnline())
	assert.Equal(t, "Stripe", PaymentMethodStripe.Label())
}

func TestHandoffRecord_IsExpired(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

	assert.False(t, (&HandoffRecord{ExpiresAt: now.Add(time.Minute)}).IsExpired(now))
	assert.True(t, (&HandoffRecord{ExpiresAt: now}).IsExpired(now))
	assert.False(t, (&HandoffRecord{}).IsExpired(now))
}
