package payments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.OwnerPayment) (*domain.OwnerPayment, error)
	List(ctx context.Context, ownerID *int64, status *domain.PaymentStatus) ([]*domain.OwnerPayment, error)
	Confirm(ctx context.Context, id int64) (*domain.OwnerPayment, error)
}

// Notifier отправляет уведомления пользователям
type Notifier interface {
	Notify(ctx context.Context, userID int64, content domain.NotificationContent)
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
