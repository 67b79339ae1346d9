package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (domain.AdmissionResult, error)
	GetOccupiedLabels(ctx context.Context, salonID int64, date time.Time) ([]types.TimeLabel, error)
}

// SalonRepository интерфейс репозитория салонов
type SalonRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Salon, error)
}

// ServiceRepository интерфейс репозитория услуг салона
type ServiceRepository interface {
	GetByIDs(ctx context.Context, salonID int64, ids []int64) ([]domain.Service, error)
}

// CommissionEvaluator проверяет приостановку салона за неуплату комиссии
type CommissionEvaluator interface {
	IsSuspended(ctx context.Context, salon *domain.Salon) (bool, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	DisplayName(ctx context.Context, userID int64) string
}

// Notifier отправляет уведомления пользователям
type Notifier interface {
	Notify(ctx context.Context, userID int64, content domain.NotificationContent)
}

// Metrics счётчик исходов допуска бронирований
type Metrics interface {
	RecordAdmission(outcome string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
