package notifier

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/events"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/userservice"
)

// NotificationRepository хранилище входящих уведомлений
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
}

// EventPublisher публикует события для внешней доставки
type EventPublisher interface {
	Publish(ctx context.Context, event events.NotificationEvent) error
}

// Metrics счётчики уведомлений
type Metrics interface {
	RecordNotification(channel, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// UserDirectory профили получателей для внешней доставки
type UserDirectory interface {
	GetUser(ctx context.Context, userID int64) (*userservice.User, error)
}

// SMSSender отправляет текстовое сообщение на номер телефона
type SMSSender interface {
	Send(ctx context.Context, to, body string) error
}
