package salons

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	salonRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/salon"
	serviceRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/salonservice"
)

// SalonRepository интерфейс репозитория салонов
type SalonRepository interface {
	Create(ctx context.Context, salon *domain.Salon) (*domain.Salon, error)
	GetByID(ctx context.Context, id int64) (*domain.Salon, error)
	GetByOwnerID(ctx context.Context, ownerID int64) (*domain.Salon, error)
	List(ctx context.Context, filter domain.SalonFilter) ([]*domain.Salon, error)
	UpdateInfo(ctx context.Context, id int64, upd salonRepo.Update) (*domain.Salon, error)
	SetStatus(ctx context.Context, id int64, status domain.SalonStatus) (*domain.Salon, error)
	SetPriority(ctx context.Context, id int64, priority *int) (*domain.Salon, error)
	Delete(ctx context.Context, id int64) error
}

// ServiceRepository интерфейс репозитория услуг салона
type ServiceRepository interface {
	Create(ctx context.Context, service *domain.Service) (*domain.Service, error)
	GetBySalonID(ctx context.Context, salonID int64) ([]domain.Service, error)
	Update(ctx context.Context, salonID, id int64, upd serviceRepo.Update) (*domain.Service, error)
	Delete(ctx context.Context, salonID, id int64) error
}

// CommissionEvaluator определяет приостановку салона за неуплату комиссии
type CommissionEvaluator interface {
	IsSuspended(ctx context.Context, salon *domain.Salon) (bool, error)
}

// Notifier отправляет уведомления пользователям
type Notifier interface {
	Notify(ctx context.Context, userID int64, content domain.NotificationContent)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
