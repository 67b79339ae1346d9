package notifications

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

type fakeInbox struct {
	items     []*domain.Notification
	lastLimit uint64
	err       error
}

func (f *fakeInbox) GetByUserID(_ context.Context, userID int64, limit uint64) ([]*domain.Notification, error) {
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.Notification, 0)
	for _, n := range f.items {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeInbox) MarkAllRead(_ context.Context, userID int64) (int64, error) {
	var n int64
	for _, item := range f.items {
		if item.UserID == userID && !item.IsRead {
			item.IsRead = true
			n++
		}
	}
	return n, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestListAndMarkAllRead(t *testing.T) {
	ctx := context.Background()
	inbox := &fakeInbox{items: []*domain.Notification{
		{ID: 1, UserID: 7, Type: domain.NotificationBookingStatus},
		{ID: 2, UserID: 7, IsRead: true},
		{ID: 3, UserID: 8},
	}}
	svc := NewService(inbox, nopLogger{})
	caller := domain.Identity{UserID: 7}

	resp, err := svc.List(ctx, caller, 0)
	require.NoError(t, err)
	assert.Len(t, resp.Notifications, 2)
	assert.Equal(t, 1, resp.Unread)
	assert.Equal(t, uint64(defaultLimit), inbox.lastLimit)
	assert.Equal(t, "booking_status", resp.Notifications[0].Type)

	updated, err := svc.MarkAllRead(ctx, caller)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	resp, err = svc.List(ctx, caller, 10)
	require.NoError(t, err)
	assert.Zero(t, resp.Unread)
	assert.Equal(t, uint64(10), inbox.lastLimit)
}

func TestList_Errors(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&fakeInbox{err: errors.New("db down")}, nopLogger{})

	_, err := svc.List(ctx, domain.Identity{UserID: 7}, maxLimit+1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.List(ctx, domain.Identity{UserID: 7}, 5)
	assert.ErrorIs(t, err, ErrInternal)
}
