package commission_due_reminders

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/commission"
)

// CommissionEvaluator возвращает владельцев в периоде оплаты с долгом
type CommissionEvaluator interface {
	DueOwners(ctx context.Context) ([]commission.DueOwner, error)
}

// ReminderStore отметки об отправленных напоминаниях
type ReminderStore interface {
	MarkCommissionReminded(ctx context.Context, ownerID int64, day time.Time) (bool, error)
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
