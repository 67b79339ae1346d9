package commission

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// SalonRepository интерфейс репозитория салонов
type SalonRepository interface {
	GetByOwnerID(ctx context.Context, ownerID int64) (*domain.Salon, error)
	List(ctx context.Context, filter domain.SalonFilter) ([]*domain.Salon, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	SumCompletedTotal(ctx context.Context, salonID int64) (decimal.Decimal, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	SumConfirmedByOwner(ctx context.Context, ownerID int64) (decimal.Decimal, error)
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
