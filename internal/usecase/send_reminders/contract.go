package send_reminders

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByDateAndStatuses(ctx context.Context, date time.Time, statuses []domain.BookingStatus) ([]*domain.Booking, error)
}

// SalonRepository интерфейс репозитория салонов
type SalonRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Salon, error)
}

// ReminderStore отметки об отправленных напоминаниях
type ReminderStore interface {
	MarkBookingReminded(ctx context.Context, bookingID int64) (bool, error)
	UnmarkBooking(ctx context.Context, bookingID int64) error
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	DisplayName(ctx context.Context, userID int64) string
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
