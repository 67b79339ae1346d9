package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	salonRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/salon"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type MockBookingRepository struct{ mock.Mock }

func (m *MockBookingRepository) GetOccupiedLabels(ctx context.Context, salonID int64, date time.Time) ([]types.TimeLabel, error) {
	args := m.Called(ctx, salonID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.TimeLabel), args.Error(1)
}

type MockSalonRepository struct{ mock.Mock }

func (m *MockSalonRepository) GetByID(ctx context.Context, id int64) (*domain.Salon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Salon), args.Error(1)
}

type MockCommission struct{ mock.Mock }

func (m *MockCommission) IsSuspended(ctx context.Context, salon *domain.Salon) (bool, error) {
	args := m.Called(ctx, salon)
	return args.Bool(0), args.Error(1)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	date      = time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	nowAt1410 = time.Date(2024, 5, 10, 14, 10, 0, 0, time.UTC)
	openSalon = &domain.Salon{ID: 1, OwnerID: 9, IsActive: true, Status: domain.SalonApproved}
)

func newUseCase(now time.Time) (*UseCase, *MockBookingRepository, *MockSalonRepository, *MockCommission) {
	bookings := new(MockBookingRepository)
	salons := new(MockSalonRepository)
	commission := new(MockCommission)

	uc := NewUseCase(bookings, salons, commission, time.UTC, nopLogger{})
	uc.timeProvider = fixedTime{t: now}

	return uc, bookings, salons, commission
}

func findSlot(t *testing.T, slots []Slot, label string) Slot {
	t.Helper()
	want := types.MustTimeLabel(label)
	for _, s := range slots {
		if s.TimeLabel.Equal(want) {
			return s
		}
	}
	t.Fatalf("slot %s not found", label)
	return Slot{}
}

func TestExecute_TodayAppliesBufferAndOccupancy(t *testing.T) {
	ctx := context.Background()
	uc, bookings, salons, commission := newUseCase(nowAt1410)

	salons.On("GetByID", ctx, int64(1)).Return(openSalon, nil)
	commission.On("IsSuspended", ctx, openSalon).Return(false, nil)
	bookings.On("GetOccupiedLabels", ctx, int64(1), date).
		Return([]types.TimeLabel{types.MustTimeLabel("04:00 PM")}, nil)

	resp, err := uc.Execute(ctx, &Request{SalonID: 1, Date: date})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 28)

	tooSoon := findSlot(t, resp.Slots, "02:30 PM")
	assert.True(t, tooSoon.IsTooSoon)
	assert.False(t, tooSoon.IsSelectable)

	selectable := findSlot(t, resp.Slots, "03:30 PM")
	assert.False(t, selectable.IsTooSoon)
	assert.True(t, selectable.IsSelectable)

	booked := findSlot(t, resp.Slots, "04:00 PM")
	assert.True(t, booked.IsBooked)
	assert.False(t, booked.IsSelectable)

	assert.Equal(t, domain.SegmentMorning, resp.Slots[0].Segment)
	assert.Equal(t, domain.SegmentEvening, resp.Slots[27].Segment)
}

func TestExecute_FutureDateIgnoresBuffer(t *testing.T) {
	ctx := context.Background()
	uc, bookings, salons, commission := newUseCase(nowAt1410)
	tomorrow := date.AddDate(0, 0, 1)

	salons.On("GetByID", ctx, int64(1)).Return(openSalon, nil)
	commission.On("IsSuspended", ctx, openSalon).Return(false, nil)
	bookings.On("GetOccupiedLabels", ctx, int64(1), tomorrow).Return([]types.TimeLabel{}, nil)

	resp, err := uc.Execute(ctx, &Request{SalonID: 1, Date: tomorrow})
	require.NoError(t, err)

	for _, s := range resp.Slots {
		assert.True(t, s.IsSelectable, s.TimeLabel.String())
	}
}

func TestExecute_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("past date", func(t *testing.T) {
		uc, _, _, _ := newUseCase(nowAt1410)
		_, err := uc.Execute(ctx, &Request{SalonID: 1, Date: date.AddDate(0, 0, -1)})
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("unknown salon", func(t *testing.T) {
		uc, _, salons, _ := newUseCase(nowAt1410)
		salons.On("GetByID", ctx, int64(2)).Return(nil, salonRepo.ErrSalonNotFound)

		_, err := uc.Execute(ctx, &Request{SalonID: 2, Date: date})
		assert.ErrorIs(t, err, ErrSalonNotFound)
	})

	t.Run("suspended salon", func(t *testing.T) {
		uc, _, salons, commission := newUseCase(nowAt1410)
		salons.On("GetByID", ctx, int64(1)).Return(openSalon, nil)
		commission.On("IsSuspended", ctx, openSalon).Return(true, nil)

		_, err := uc.Execute(ctx, &Request{SalonID: 1, Date: date})
		assert.ErrorIs(t, err, ErrSalonNotBookable)
	})

	t.Run("invalid salon id", func(t *testing.T) {
		uc, _, _, _ := newUseCase(nowAt1410)
		_, err := uc.Execute(ctx, &Request{SalonID: 0, Date: date})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
