package notifier

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/events"
)

type MockRepo struct{ mock.Mock }

func (m *MockRepo) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Notification), args.Error(1)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, event events.NotificationEvent) error {
	return m.Called(ctx, event).Error(0)
}

type MockMetrics struct{ mock.Mock }

func (m *MockMetrics) RecordNotification(channel, result string) {
	m.Called(channel, result)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestNotifier_Notify_StoresAndPublishes(t *testing.T) {
	repo := new(MockRepo)
	pub := new(MockPublisher)
	metrics := new(MockMetrics)
	ctx := context.Background()

	content := domain.BookingCreatedNotice("Karim")

	repo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == 11 && n.Type == domain.NotificationBookingCreated && n.Title == content.Title
	})).Return(&domain.Notification{ID: 1, UserID: 11, Type: content.Type, Title: content.Title, Message: content.Message}, nil)
	pub.On("Publish", ctx, mock.MatchedBy(func(e events.NotificationEvent) bool {
		return e.UserID == 11 && e.ID != ""
	})).Return(nil)
	metrics.On("RecordNotification", "inbox", "ok").Once()
	metrics.On("RecordNotification", "kafka", "ok").Once()

	New(repo, pub, metrics, nopLogger{}).Notify(ctx, 11, content)

	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
	metrics.AssertExpectations(t)
}

func TestNotifier_Notify_StoreFailureSkipsPublish(t *testing.T) {
	repo := new(MockRepo)
	pub := new(MockPublisher)
	ctx := context.Background()

	repo.On("Create", ctx, mock.Anything).Return(nil, errors.New("db down"))

	New(repo, pub, nil, nopLogger{}).Notify(ctx, 11, domain.PaymentConfirmedNotice())

	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestNotifier_Notify_PublishFailureIsSwallowed(t *testing.T) {
	repo := new(MockRepo)
	pub := new(MockPublisher)
	ctx := context.Background()

	repo.On("Create", ctx, mock.Anything).Return(&domain.Notification{ID: 2, UserID: 5}, nil)
	pub.On("Publish", ctx, mock.Anything).Return(errors.New("broker unavailable"))

	assert.NotPanics(t, func() {
		New(repo, pub, nil, nopLogger{}).Notify(ctx, 5, domain.PaymentConfirmedNotice())
	})
	pub.AssertExpectations(t)
}

func TestNotifier_Notify_WithoutPublisher(t *testing.T) {
	repo := new(MockRepo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.Anything).Return(&domain.Notification{ID: 3, UserID: 5}, nil)

	New(repo, nil, nil, nopLogger{}).Notify(ctx, 5, domain.PaymentConfirmedNotice())

	repo.AssertExpectations(t)
}
