package reviews

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// ReviewRepository интерфейс репозитория отзывов
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	GetBySalonID(ctx context.Context, salonID int64) ([]*domain.Review, error)
	Stats(ctx context.Context, salonID int64) (sum int64, count int, err error)
}

// SalonRepository интерфейс репозитория салонов
type SalonRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Salon, error)
	LockByID(ctx context.Context, id int64) error
	UpdateRating(ctx context.Context, id int64, rating float64, reviewCount int) error
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	DisplayName(ctx context.Context, userID int64) string
}

// Notifier отправляет уведомления пользователям
type Notifier interface {
	Notify(ctx context.Context, userID int64, content domain.NotificationContent)
}

// TransactionManager выполняет функцию в транзакции
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
