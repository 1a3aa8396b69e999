package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonCheckout/internal/domain"
	"github.com/m04kA/SMC-SalonCheckout/pkg/logger"
)

type mockBookingClient struct {
	mock.Mock
}

func (m *mockBookingClient) GetBookedSlots(ctx context.Context, salonID int64, date time.Time) ([]domain.BookedInterval, error) {
	args := m.Called(ctx, salonID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BookedInterval), args.Error(1)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

func newUseCase(client *mockBookingClient, now time.Time) *UseCase {
	uc := NewUseCase(client, logger.NewNop())
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func at(day, hour, minute int) time.Time {
	return time.Date(2025, 3, day, hour, minute, 0, 0, time.UTC)
}

func slotByStart(slots []domain.AvailableSlot, start string) (domain.AvailableSlot, bool) {
	for _, s := range slots {
		if s.StartTime == start {
			return s, true
		}
	}
	return domain.AvailableSlot{}, false
}

func TestExecute_MarksBookedSlots(t *testing.T) {
	client := new(mockBookingClient)
	date := at(20, 0, 0)
	client.On("GetBookedSlots", mock.Anything, int64(7), date).Return([]domain.BookedInterval{
		{Start: at(20, 10, 0), End: at(20, 11, 0)},
		{Start: at(20, 15, 15), End: at(20, 15, 45)},
	}, nil)

	resp, err := newUseCase(client, at(14, 12, 0)).Execute(context.Background(), &Request{SalonID: 7, Date: date})
	require.NoError(t, err)

	assert.Len(t, resp.Slots, 24)
	assert.False(t, resp.Degraded)

	expected := map[string]bool{
		"09:30": true,
		"10:00": false,
		"10:30": false,
		"11:00": true,
		"15:00": false,
		"15:30": false,
		"16:00": true,
	}
	for start, available := range expected {
		slot, ok := slotByStart(resp.Slots, start)
		require.True(t, ok, start)
		assert.Equal(t, available, slot.Available, start)
	}
}

func TestExecute_TodayDropsPastSlots(t *testing.T) {
	client := new(mockBookingClient)
	date := at(14, 0, 0)
	client.On("GetBookedSlots", mock.Anything, int64(7), date).Return([]domain.BookedInterval{}, nil)

	resp, err := newUseCase(client, at(14, 18, 10)).Execute(context.Background(), &Request{SalonID: 7, Date: date})
	require.NoError(t, err)

	starts := make([]string, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		starts = append(starts, s.StartTime)
	}
	assert.Equal(t, []string{"18:30", "19:00", "19:30", "20:00", "20:30"}, starts)
}

func TestExecute_PastDateHasNoSlots(t *testing.T) {
	client := new(mockBookingClient)

	resp, err := newUseCase(client, at(14, 12, 0)).Execute(context.Background(), &Request{SalonID: 7, Date: at(13, 0, 0)})
	require.NoError(t, err)

	assert.Empty(t, resp.Slots)
	client.AssertNotCalled(t, "GetBookedSlots", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_DegradesWhenBookingServiceFails(t *testing.T) {
	client := new(mockBookingClient)
	client.On("GetBookedSlots", mock.Anything, int64(7), mock.Anything).Return(nil, errors.New("connection refused"))

	resp, err := newUseCase(client, at(14, 12, 0)).Execute(context.Background(), &Request{SalonID: 7, Date: at(20, 0, 0)})
	require.NoError(t, err)

	assert.True(t, resp.Degraded)
	assert.Len(t, resp.Slots, 24)
	for _, s := range resp.Slots {
		assert.True(t, s.Available)
	}
}

func TestExecute_InvalidInput(t *testing.T) {
	client := new(mockBookingClient)
	uc := newUseCase(client, at(14, 12, 0))

	_, err := uc.Execute(context.Background(), &Request{SalonID: 0, Date: at(20, 0, 0)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{SalonID: 7})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
