package salons

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	salonRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/salon"
	serviceRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/salonservice"
	"github.com/m04kA/SMC-SalonBooking/internal/service/salons/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

type MockSalonRepository struct{ mock.Mock }

func (m *MockSalonRepository) Create(ctx context.Context, salon *domain.Salon) (*domain.Salon, error) {
	args := m.Called(ctx, salon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Salon), args.Error(1)
}

func (m *MockSalonRepository) GetByID(ctx context.Context, id int64) (*domain.Salon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Salon), args.Error(1)
}

func (m *MockSalonRepository) GetByOwnerID(ctx context.Context, ownerID int64) (*domain.Salon, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Salon), args.Error(1)
}

func (m *MockSalonRepository) List(ctx context.Context, filter domain.SalonFilter) ([]*domain.Salon, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Salon), args.Error(1)
}

func (m *MockSalonRepository) UpdateInfo(ctx context.Context, id int64, upd salonRepo.Update) (*domain.Salon, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Salon), args.Error(1)
}

func (m *MockSalonRepository) SetStatus(ctx context.Context, id int64, status domain.SalonStatus) (*domain.Salon, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Salon), args.Error(1)
}

func (m *MockSalonRepository) SetPriority(ctx context.Context, id int64, priority *int) (*domain.Salon, error) {
	args := m.Called(ctx, id, priority)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Salon), args.Error(1)
}

func (m *MockSalonRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockServiceRepository struct{ mock.Mock }

func (m *MockServiceRepository) Create(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	args := m.Called(ctx, service)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

func (m *MockServiceRepository) GetBySalonID(ctx context.Context, salonID int64) ([]domain.Service, error) {
	args := m.Called(ctx, salonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Service), args.Error(1)
}

func (m *MockServiceRepository) Update(ctx context.Context, salonID, id int64, upd serviceRepo.Update) (*domain.Service, error) {
	args := m.Called(ctx, salonID, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Service), args.Error(1)
}

func (m *MockServiceRepository) Delete(ctx context.Context, salonID, id int64) error {
	return m.Called(ctx, salonID, id).Error(0)
}

type fakeCommission struct {
	suspended map[int64]bool
	failFor   map[int64]bool
}

func (f fakeCommission) IsSuspended(_ context.Context, salon *domain.Salon) (bool, error) {
	if f.failFor[salon.ID] {
		return false, errors.New("db down")
	}
	return f.suspended[salon.ID], nil
}

type recordingNotifier struct {
	sent []sentNotice
}

type sentNotice struct {
	userID  int64
	content domain.NotificationContent
}

func (n *recordingNotifier) Notify(_ context.Context, userID int64, content domain.NotificationContent) {
	n.sent = append(n.sent, sentNotice{userID: userID, content: content})
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	owner = domain.Identity{UserID: 100, Role: domain.RoleOwner}
	admin = domain.Identity{UserID: 1, Role: domain.RoleAdmin}
)

func approvedSalon(id int64) *domain.Salon {
	return &domain.Salon{
		ID:       id,
		OwnerID:  owner.UserID,
		Name:     "Glow",
		Location: "Dhanmondi",
		IsActive: true,
		Status:   domain.SalonApproved,
	}
}

func newService(commission fakeCommission) (*Service, *MockSalonRepository, *MockServiceRepository, *recordingNotifier) {
	salons := new(MockSalonRepository)
	services := new(MockServiceRepository)
	notifier := &recordingNotifier{}
	return NewService(salons, services, commission, notifier, nopLogger{}), salons, services, notifier
}

func TestListBookable_ExcludesSuspended(t *testing.T) {
	ctx := context.Background()
	svc, salons, _, _ := newService(fakeCommission{
		suspended: map[int64]bool{2: true},
		failFor:   map[int64]bool{3: true},
	})

	salons.On("List", ctx, domain.SalonFilter{Search: "glow", OnlyListable: true}).
		Return([]*domain.Salon{approvedSalon(1), approvedSalon(2), approvedSalon(3), approvedSalon(4)}, nil)

	resp, err := svc.ListBookable(ctx, "glow")
	require.NoError(t, err)

	ids := make([]int64, 0, len(resp.Salons))
	for _, s := range resp.Salons {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []int64{1, 4}, ids)
}

func TestListAll_AdminOnly(t *testing.T) {
	ctx := context.Background()
	svc, salons, _, _ := newService(fakeCommission{})
	salons.On("List", ctx, domain.SalonFilter{}).Return([]*domain.Salon{approvedSalon(1)}, nil)

	_, err := svc.ListAll(ctx, owner, "")
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := svc.ListAll(ctx, admin, "")
	require.NoError(t, err)
	assert.Len(t, resp.Salons, 1)
}

func TestGet_WithServices(t *testing.T) {
	ctx := context.Background()
	svc, salons, services, _ := newService(fakeCommission{})
	salons.On("GetByID", ctx, int64(1)).Return(approvedSalon(1), nil)
	services.On("GetBySalonID", ctx, int64(1)).Return([]domain.Service{
		{ID: 10, SalonID: 1, Name: "Haircut", Price: decimal.NewFromInt(300), DurationMinutes: 30},
	}, nil)

	resp, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	require.Len(t, resp.Services, 1)
	assert.Equal(t, "Haircut", resp.Services[0].Name)

	salons.On("GetByID", ctx, int64(2)).Return(nil, salonRepo.ErrSalonNotFound)
	_, err = svc.Get(ctx, 2)
	assert.ErrorIs(t, err, ErrSalonNotFound)
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("owner creates pending salon", func(t *testing.T) {
		svc, salons, _, _ := newService(fakeCommission{})
		salons.On("Create", ctx, mock.MatchedBy(func(s *domain.Salon) bool {
			return s.OwnerID == owner.UserID && s.Status == domain.SalonPending && s.IsActive && s.Name == "Glow"
		})).Return(&domain.Salon{ID: 7, OwnerID: owner.UserID, Name: "Glow", Status: domain.SalonPending}, nil)

		resp, err := svc.Create(ctx, owner, &models.CreateSalonRequest{Name: "  Glow ", Location: "Dhanmondi"})
		require.NoError(t, err)
		assert.Equal(t, "pending", resp.Status)
	})

	t.Run("second salon", func(t *testing.T) {
		svc, salons, _, _ := newService(fakeCommission{})
		salons.On("Create", ctx, mock.Anything).Return(nil, salonRepo.ErrSalonAlreadyExists)

		_, err := svc.Create(ctx, owner, &models.CreateSalonRequest{Name: "Glow", Location: "Dhanmondi"})
		assert.ErrorIs(t, err, ErrSalonAlreadyExists)
	})

	t.Run("customer", func(t *testing.T) {
		svc, _, _, _ := newService(fakeCommission{})
		_, err := svc.Create(ctx, domain.Identity{UserID: 5, Role: domain.RoleUser}, &models.CreateSalonRequest{Name: "X", Location: "Y"})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("missing location", func(t *testing.T) {
		svc, _, _, _ := newService(fakeCommission{})
		_, err := svc.Create(ctx, owner, &models.CreateSalonRequest{Name: "Glow"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestUpdate_Access(t *testing.T) {
	ctx := context.Background()
	svc, salons, _, _ := newService(fakeCommission{})
	salons.On("GetByID", ctx, int64(1)).Return(approvedSalon(1), nil)
	salons.On("UpdateInfo", ctx, int64(1), salonRepo.Update{IsActive: ptr.Ptr(false)}).Return(approvedSalon(1), nil)

	_, err := svc.Update(ctx, owner, 1, &models.UpdateSalonRequest{IsActive: ptr.Ptr(false)})
	assert.NoError(t, err)

	_, err = svc.Update(ctx, admin, 1, &models.UpdateSalonRequest{IsActive: ptr.Ptr(false)})
	assert.NoError(t, err)

	_, err = svc.Update(ctx, admin, 1, &models.UpdateSalonRequest{Name: ptr.Ptr("Other")})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.Update(ctx, domain.Identity{UserID: 42}, 1, &models.UpdateSalonRequest{IsActive: ptr.Ptr(true)})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.Update(ctx, owner, 1, &models.UpdateSalonRequest{Name: ptr.Ptr("   ")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSetStatus_NotifiesOwner(t *testing.T) {
	ctx := context.Background()
	svc, salons, _, notifier := newService(fakeCommission{})
	salons.On("SetStatus", ctx, int64(1), domain.SalonApproved).Return(approvedSalon(1), nil)

	_, err := svc.SetStatus(ctx, owner, 1, "approved")
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.SetStatus(ctx, admin, 1, "archived")
	assert.ErrorIs(t, err, ErrInvalidInput)

	resp, err := svc.SetStatus(ctx, admin, 1, "approved")
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, owner.UserID, notifier.sent[0].userID)
	assert.Equal(t, domain.NotificationSalonStatus, notifier.sent[0].content.Type)
}

func TestSetPriority(t *testing.T) {
	ctx := context.Background()
	svc, salons, _, _ := newService(fakeCommission{})
	ranked := approvedSalon(1)
	ranked.Priority = ptr.Ptr(1)
	salons.On("SetPriority", ctx, int64(1), ptr.Ptr(1)).Return(ranked, nil)

	resp, err := svc.SetPriority(ctx, admin, 1, ptr.Ptr(1))
	require.NoError(t, err)
	assert.Equal(t, 1, *resp.Priority)

	_, err = svc.SetPriority(ctx, admin, 1, ptr.Ptr(-1))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc, salons, _, _ := newService(fakeCommission{})
	salons.On("Delete", ctx, int64(1)).Return(nil)
	salons.On("Delete", ctx, int64(2)).Return(salonRepo.ErrSalonNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, owner, 1), ErrAccessDenied)
	assert.NoError(t, svc.Delete(ctx, admin, 1))
	assert.ErrorIs(t, svc.Delete(ctx, admin, 2), ErrSalonNotFound)
}

func TestCatalog(t *testing.T) {
	ctx := context.Background()
	svc, salons, services, _ := newService(fakeCommission{})
	salons.On("GetByID", ctx, int64(1)).Return(approvedSalon(1), nil)

	price := decimal.NewFromInt(450)
	services.On("Create", ctx, mock.MatchedBy(func(s *domain.Service) bool {
		return s.SalonID == 1 && s.Name == "Facial" && s.Price.Equal(price)
	})).Return(&domain.Service{ID: 3, SalonID: 1, Name: "Facial", Price: price, DurationMinutes: 45}, nil)

	created, err := svc.AddService(ctx, owner, 1, &models.ServiceRequest{
		Name: ptr.Ptr("Facial"), Price: &price, DurationMinutes: ptr.Ptr(45),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)

	_, err = svc.AddService(ctx, owner, 1, &models.ServiceRequest{Name: ptr.Ptr("Facial")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	zero := decimal.Zero
	_, err = svc.UpdateService(ctx, owner, 1, 3, &models.ServiceRequest{Price: &zero})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AddService(ctx, domain.Identity{UserID: 42}, 1, &models.ServiceRequest{})
	assert.ErrorIs(t, err, ErrAccessDenied)

	services.On("Delete", ctx, int64(1), int64(9)).Return(serviceRepo.ErrServiceNotFound)
	assert.ErrorIs(t, svc.DeleteService(ctx, owner, 1, 9), ErrServiceNotFound)
}
