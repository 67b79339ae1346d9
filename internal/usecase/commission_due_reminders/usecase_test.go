package commission_due_reminders

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
	"github.com/m04kA/SMC-SalonBooking/internal/service/commission"
)

type fakeEvaluator struct {
	due []commission.DueOwner
	err error
}

func (f fakeEvaluator) DueOwners(context.Context) ([]commission.DueOwner, error) {
	return f.due, f.err
}

type MockReminderStore struct{ mock.Mock }

func (m *MockReminderStore) MarkCommissionReminded(ctx context.Context, ownerID int64, day time.Time) (bool, error) {
	args := m.Called(ctx, ownerID, day)
	return args.Bool(0), args.Error(1)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, userID int64, content domain.NotificationContent) {
	m.Called(ctx, userID, content)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 12, 10, 0, 0, 0, time.UTC)
	debt := decimal.NewFromInt(150)

	evaluator := fakeEvaluator{due: []commission.DueOwner{
		{OwnerID: 100, SalonID: 1, Status: domain.CommissionStatus{Debt: debt, IsDue: true}},
		{OwnerID: 200, SalonID: 2, Status: domain.CommissionStatus{Debt: debt, IsDue: true}},
		{OwnerID: 300, SalonID: 3, Status: domain.CommissionStatus{Debt: debt, IsDue: true}},
	}}

	store := new(MockReminderStore)
	store.On("MarkCommissionReminded", ctx, int64(100), now).Return(true, nil)
	store.On("MarkCommissionReminded", ctx, int64(200), now).Return(false, nil)
	store.On("MarkCommissionReminded", ctx, int64(300), now).Return(false, errors.New("redis down"))

	notifier := new(MockNotifier)
	notifier.On("Notify", ctx, int64(100), domain.CommissionDueNotice(debt)).Once()

	uc := NewUseCase(evaluator, store, notifier, time.UTC, nopLogger{})
	uc.timeProvider = fixedTime{t: now}

	resp, err := uc.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Due)
	assert.Equal(t, 1, resp.Sent)
	notifier.AssertExpectations(t)
}

func TestExecute_EvaluatorError(t *testing.T) {
	uc := NewUseCase(fakeEvaluator{err: errors.New("db down")}, new(MockReminderStore), new(MockNotifier), time.UTC, nopLogger{})

	_, err := uc.Execute(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
