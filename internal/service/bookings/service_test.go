package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type MockBookingRepository struct{ mock.Mock }

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetBySalonWithFilter(ctx context.Context, filter domain.SalonBookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) (*domain.Booking, error) {
	args := m.Called(ctx, id, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type MockSalonRepository struct{ mock.Mock }

func (m *MockSalonRepository) GetByID(ctx context.Context, id int64) (*domain.Salon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Salon), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, userID int64, content domain.NotificationContent) {
	m.Called(ctx, userID, content)
}

type fakeUsers struct{}

func (fakeUsers) DisplayName(context.Context, int64) string { return "Karim" }

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const (
	customerID = int64(7)
	ownerID    = int64(100)
	salonID    = int64(1)
)

var (
	createdAt = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	salon     = &domain.Salon{ID: salonID, OwnerID: ownerID, Name: "Glow"}
)

func newBooking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:         5,
		UserID:     customerID,
		SalonID:    salonID,
		ServiceIDs: []int64{1},
		Date:       time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC),
		TimeLabel:  types.MustTimeLabel("10:00 AM"),
		Status:     status,
		TotalPrice: decimal.NewFromInt(500),
		CreatedAt:  createdAt,
	}
}

func newService(now time.Time) (*Service, *MockBookingRepository, *MockSalonRepository, *MockNotifier) {
	bookings := new(MockBookingRepository)
	salons := new(MockSalonRepository)
	notifier := new(MockNotifier)

	svc := NewService(bookings, salons, fakeUsers{}, notifier, nopLogger{})
	svc.timeProvider = fixedTime{t: now}

	return svc, bookings, salons, notifier
}

func TestCancel_CustomerWindow(t *testing.T) {
	ctx := context.Background()

	t.Run("59 minutes after creation", func(t *testing.T) {
		svc, bookings, salons, notifier := newService(createdAt.Add(59 * time.Minute))
		booking := newBooking(domain.StatusPending)
		rejected := newBooking(domain.StatusRejected)

		bookings.On("GetByID", ctx, int64(5)).Return(booking, nil)
		bookings.On("UpdateStatus", ctx, int64(5), domain.StatusPending, domain.StatusRejected).Return(rejected, nil)
		salons.On("GetByID", ctx, salonID).Return(salon, nil)
		notifier.On("Notify", ctx, ownerID, domain.BookingCancelledNotice("Karim")).Once()

		resp, err := svc.Cancel(ctx, 5, domain.Identity{UserID: customerID, Role: domain.RoleUser})
		require.NoError(t, err)
		assert.Equal(t, "REJECTED", resp.Status)
		notifier.AssertExpectations(t)
	})

	t.Run("61 minutes after creation", func(t *testing.T) {
		svc, bookings, _, notifier := newService(createdAt.Add(61 * time.Minute))
		bookings.On("GetByID", ctx, int64(5)).Return(newBooking(domain.StatusPending), nil)

		_, err := svc.Cancel(ctx, 5, domain.Identity{UserID: customerID, Role: domain.RoleUser})
		assert.ErrorIs(t, err, ErrCancellationWindowExpired)
		bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("confirmed booking", func(t *testing.T) {
		svc, bookings, _, _ := newService(createdAt.Add(5 * time.Minute))
		bookings.On("GetByID", ctx, int64(5)).Return(newBooking(domain.StatusConfirmed), nil)

		_, err := svc.Cancel(ctx, 5, domain.Identity{UserID: customerID})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("someone else's booking", func(t *testing.T) {
		svc, bookings, _, _ := newService(createdAt.Add(5 * time.Minute))
		bookings.On("GetByID", ctx, int64(5)).Return(newBooking(domain.StatusPending), nil)

		_, err := svc.Cancel(ctx, 5, domain.Identity{UserID: 99})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestUpdateStatus_OwnerTransitions(t *testing.T) {
	ctx := context.Background()
	owner := domain.Identity{UserID: ownerID, Role: domain.RoleOwner}

	tests := []struct {
		name    string
		from    domain.BookingStatus
		to      string
		wantErr error
	}{
		{"confirm pending", domain.StatusPending, "CONFIRMED", nil},
		{"reject pending", domain.StatusPending, "REJECTED", nil},
		{"complete confirmed", domain.StatusConfirmed, "COMPLETED", nil},
		{"complete pending", domain.StatusPending, "COMPLETED", ErrInvalidTransition},
		{"reopen rejected", domain.StatusRejected, "PENDING", ErrInvalidTransition},
		{"reject completed", domain.StatusCompleted, "REJECTED", ErrInvalidTransition},
		{"unknown status", domain.StatusPending, "CANCELLED", ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, bookings, salons, notifier := newService(createdAt.Add(3 * time.Hour))
			bookings.On("GetByID", ctx, int64(5)).Return(newBooking(tt.from), nil)
			salons.On("GetByID", ctx, salonID).Return(salon, nil)

			if tt.wantErr == nil {
				next := domain.BookingStatus(tt.to)
				bookings.On("UpdateStatus", ctx, int64(5), tt.from, next).Return(newBooking(next), nil)
				notifier.On("Notify", ctx, customerID, domain.BookingStatusNotice("Glow", next)).Once()
			}

			resp, err := svc.UpdateStatus(ctx, 5, &models.UpdateStatusRequest{Caller: owner, Status: tt.to})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, resp.Status)
			notifier.AssertExpectations(t)
		})
	}
}

func TestUpdateStatus_NotOwner(t *testing.T) {
	ctx := context.Background()
	svc, bookings, salons, _ := newService(createdAt)
	bookings.On("GetByID", ctx, int64(5)).Return(newBooking(domain.StatusPending), nil)
	salons.On("GetByID", ctx, salonID).Return(salon, nil)

	_, err := svc.UpdateStatus(ctx, 5, &models.UpdateStatusRequest{
		Caller: domain.Identity{UserID: customerID},
		Status: "CONFIRMED",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_ConcurrentChange(t *testing.T) {
	ctx := context.Background()
	svc, bookings, salons, notifier := newService(createdAt)
	bookings.On("GetByID", ctx, int64(5)).Return(newBooking(domain.StatusPending), nil)
	salons.On("GetByID", ctx, salonID).Return(salon, nil)
	bookings.On("UpdateStatus", ctx, int64(5), domain.StatusPending, domain.StatusConfirmed).
		Return(nil, bookingRepo.ErrStatusChanged)

	_, err := svc.UpdateStatus(ctx, 5, &models.UpdateStatusRequest{
		Caller: domain.Identity{UserID: ownerID},
		Status: "CONFIRMED",
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetByID_Access(t *testing.T) {
	ctx := context.Background()
	svc, bookings, salons, _ := newService(createdAt)
	bookings.On("GetByID", ctx, int64(5)).Return(newBooking(domain.StatusPending), nil)
	salons.On("GetByID", ctx, salonID).Return(salon, nil)

	_, err := svc.GetByID(ctx, 5, domain.Identity{UserID: customerID})
	assert.NoError(t, err)

	_, err = svc.GetByID(ctx, 5, domain.Identity{UserID: ownerID, Role: domain.RoleOwner})
	assert.NoError(t, err)

	_, err = svc.GetByID(ctx, 5, domain.Identity{UserID: 1, Role: domain.RoleAdmin})
	assert.NoError(t, err)

	_, err = svc.GetByID(ctx, 5, domain.Identity{UserID: 42})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, bookings, _, _ := newService(createdAt)
	bookings.On("GetByID", ctx, int64(9)).Return(nil, bookingRepo.ErrBookingNotFound)

	_, err := svc.GetByID(ctx, 9, domain.Identity{UserID: customerID})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookings(t *testing.T) {
	ctx := context.Background()
	svc, bookings, _, _ := newService(createdAt)
	status := domain.StatusPending
	bookings.On("GetByUserID", ctx, customerID, &status).
		Return([]*domain.Booking{newBooking(domain.StatusPending)}, nil)

	resp, err := svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{UserID: customerID, Status: ptr.Ptr("PENDING")})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "10:00 AM", resp.Bookings[0].TimeSlot)
	assert.Equal(t, "2024-05-11", resp.Bookings[0].Date)

	_, err = svc.GetUserBookings(ctx, &models.GetUserBookingsRequest{UserID: customerID, Status: ptr.Ptr("done")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetSalonBookings(t *testing.T) {
	ctx := context.Background()
	svc, bookings, salons, _ := newService(createdAt)
	salons.On("GetByID", ctx, salonID).Return(salon, nil)
	bookings.On("GetBySalonWithFilter", ctx, domain.SalonBookingsFilter{SalonID: salonID}).
		Return([]*domain.Booking{}, nil)

	resp, err := svc.GetSalonBookings(ctx, &models.GetSalonBookingsRequest{
		Caller:  domain.Identity{UserID: ownerID},
		SalonID: salonID,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Bookings)

	_, err = svc.GetSalonBookings(ctx, &models.GetSalonBookingsRequest{
		Caller:  domain.Identity{UserID: customerID},
		SalonID: salonID,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetSalonBookings_RepositoryError(t *testing.T) {
	ctx := context.Background()
	svc, bookings, _, _ := newService(createdAt)
	bookings.On("GetBySalonWithFilter", ctx, mock.Anything).Return(nil, errors.New("db down"))

	_, err := svc.GetSalonBookings(ctx, &models.GetSalonBookingsRequest{
		Caller:  domain.Identity{UserID: 1, Role: domain.RoleAdmin},
		SalonID: salonID,
	})
	assert.ErrorIs(t, err, ErrInternal)
}
